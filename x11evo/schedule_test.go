// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestDayIndex ensures timestamps map to the expected day indices.
func TestDayIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		timestamp int64
		want      uint64
	}{
		{"epoch", Epoch, 0},
		{"one second before epoch", Epoch - 1, 0},
		{"one day before epoch", Epoch - SecondsPerDay, 0},
		{"unix zero", 0, 0},
		{"negative", -1, 0},
		{"min int64", math.MinInt64, 0},
		{"last second of day zero", Epoch + SecondsPerDay - 1, 0},
		{"first second of day one", Epoch + SecondsPerDay, 1},
		{"mainnet genesis", 1464436800, 27},
		{"ten years", Epoch + 3650*SecondsPerDay + 12345, 3650},
		{"max int64", math.MaxInt64, uint64(math.MaxInt64-Epoch) / SecondsPerDay},
	}

	for _, test := range tests {
		got := DayIndex(test.timestamp)
		require.Equalf(t, test.want, got, "%s: timestamp %d",
			test.name, test.timestamp)
	}
}

// TestNextPermutation ensures the lexicographic successor and the wrap
// around from the last arrangement to the first.
func TestNextPermutation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []Algo
		want []Algo
	}{
		{[]Algo{0, 1, 2}, []Algo{0, 2, 1}},
		{[]Algo{0, 2, 1}, []Algo{1, 0, 2}},
		{[]Algo{1, 2, 0}, []Algo{2, 0, 1}},
		{[]Algo{2, 1, 0}, []Algo{0, 1, 2}},
		{[]Algo{1, 0}, []Algo{0, 1}},
		{[]Algo{7}, []Algo{7}},
		{[]Algo{}, []Algo{}},
	}

	for i, test := range tests {
		got := make([]Algo, len(test.in))
		copy(got, test.in)
		NextPermutation(got)
		require.Equalf(t, test.want, got, "test #%d: input %v", i,
			test.in)
	}

	// Applying it 3! times to three elements must cycle back.
	seq := []Algo{0, 1, 2}
	seen := make(map[[3]Algo]struct{})
	for i := 0; i < 6; i++ {
		seen[[3]Algo{seq[0], seq[1], seq[2]}] = struct{}{}
		NextPermutation(seq)
	}
	require.Len(t, seen, 6)
	require.Equal(t, []Algo{0, 1, 2}, seq)
}

// TestScheduleForDay pins the schedules of a few day indices.
func TestScheduleForDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day  uint64
		want Schedule
	}{
		{0, Schedule{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{1, Schedule{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 9}},
		{2, Schedule{0, 1, 2, 3, 4, 5, 6, 7, 9, 8, 10}},
		{3, Schedule{0, 1, 2, 3, 4, 5, 6, 7, 9, 10, 8}},
		{27, Schedule{0, 1, 2, 3, 4, 5, 7, 6, 9, 10, 8}},
		{100, Schedule{0, 1, 2, 3, 4, 5, 10, 6, 9, 7, 8}},
		{1000, Schedule{0, 1, 2, 3, 5, 7, 6, 9, 10, 4, 8}},
		{3650, Schedule{0, 1, 2, 3, 9, 4, 7, 5, 8, 6, 10}},
		{NumSchedules - 1, Schedule{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}},
		{NumSchedules, IdentitySchedule},
		{NumSchedules + 1, Schedule{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 9}},
	}

	for _, test := range tests {
		got := ScheduleForDay(test.day)
		if got != test.want {
			t.Fatalf("day %d: unexpected schedule - got %v, want %v",
				test.day, spew.Sdump(got), spew.Sdump(test.want))
		}
	}

	require.Equal(t, IdentitySchedule, ScheduleForTime(Epoch))
	require.Equal(t, ScheduleForDay(math.MaxUint64%NumSchedules),
		ScheduleForDay(math.MaxUint64))
}

// TestScheduleMatchesIteration ensures decoding the rank directly gives the
// same schedule as repeatedly applying NextPermutation to the identity.
func TestScheduleMatchesIteration(t *testing.T) {
	t.Parallel()

	// Walk the first few thousand days incrementally.
	s := IdentitySchedule
	for day := uint64(0); day < 5000; day++ {
		require.Equalf(t, s, ScheduleForDay(day), "day %d", day)
		NextPermutation(s[:])
	}

	// The last schedule wraps back around to the identity.
	last := ScheduleForDay(NumSchedules - 1)
	NextPermutation(last[:])
	require.Equal(t, IdentitySchedule, last)

	// Spot check a few random days against the slow reference.
	randSeed := rand.Int63()
	defer func() {
		if t.Failed() {
			t.Logf("Random numbers using seed: %v", randSeed)
		}
	}()
	prng := rand.New(rand.NewSource(randSeed))
	for i := 0; i < 3; i++ {
		day := uint64(prng.Intn(200000))
		require.Equalf(t, scheduleByIteration(day), ScheduleForDay(day),
			"day %d", day)
	}
}

// TestScheduleValid ensures every computed schedule is a permutation of all
// the primitives and that invalid schedules are detected.
func TestScheduleValid(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		day := prng.Uint64()
		s := ScheduleForDay(day)
		require.Truef(t, s.Valid(), "day %d: %v", day, s)
	}
	for day := uint64(NumSchedules - 100); day < NumSchedules+100; day++ {
		require.Truef(t, ScheduleForDay(day).Valid(), "day %d", day)
	}

	dup := IdentitySchedule
	dup[3] = dup[4]
	require.False(t, dup.Valid())

	outOfRange := IdentitySchedule
	outOfRange[10] = NumAlgos
	require.False(t, outOfRange.Valid())

	require.False(t, Schedule{}.Valid())
}

// TestSameDaySameSchedule ensures all timestamps within a day share a
// schedule and that neighboring days differ.
func TestSameDaySameSchedule(t *testing.T) {
	t.Parallel()

	for _, day := range []int64{0, 1, 27, 500} {
		start := int64(Epoch) + day*SecondsPerDay
		want := ScheduleForTime(start)
		for _, offset := range []int64{1, 3600, SecondsPerDay - 1} {
			require.Equal(t, want, ScheduleForTime(start+offset))
		}
		require.NotEqual(t, want, ScheduleForTime(start+SecondsPerDay))
	}
}

// TestAlgoStringer tests the stringized output for the Algo type.
func TestAlgoStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Algo
		want string
	}{
		{Blake, "BLAKE"},
		{BMW, "BMW"},
		{Groestl, "GROESTL"},
		{Skein, "SKEIN"},
		{JH, "JH"},
		{Keccak, "KECCAK"},
		{Luffa, "LUFFA"},
		{CubeHash, "CUBEHASH"},
		{SHAvite, "SHAVITE"},
		{SIMD, "SIMD"},
		{Echo, "ECHO"},
		{0xff, "Unknown Algo (255)"},
	}

	for _, test := range tests {
		require.Equal(t, test.want, test.in.String())
	}

	require.Equal(t, "BLAKE-BMW-GROESTL-SKEIN-JH-KECCAK-LUFFA-CUBEHASH-"+
		"SHAVITE-ECHO-SIMD", ScheduleForDay(1).String())
}
