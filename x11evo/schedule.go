// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"strings"
)

const (
	// Epoch is the unix time at which day index zero begins.  Headers
	// stamped before it all use the identity schedule.
	Epoch = 1462060800

	// SecondsPerDay is the length of one schedule period.
	SecondsPerDay = 60 * 60 * 24

	// NumSchedules is the number of distinct schedules, 11!.  Day indices
	// wrap around with this period.
	NumSchedules = 39916800
)

// factorials holds n! for n in [0, NumAlgos].
var factorials = func() [NumAlgos + 1]uint64 {
	var f [NumAlgos + 1]uint64
	f[0] = 1
	for i := 1; i <= NumAlgos; i++ {
		f[i] = f[i-1] * uint64(i)
	}
	return f
}()

// Schedule is the order in which the primitives are chained.  A valid
// schedule contains every Algo exactly once.
type Schedule [NumAlgos]Algo

// IdentitySchedule is the schedule for day index zero.
var IdentitySchedule = Schedule{
	Blake, BMW, Groestl, Skein, JH, Keccak, Luffa, CubeHash, SHAvite,
	SIMD, Echo,
}

// Valid returns whether the schedule is a permutation of all the
// primitives.
func (s Schedule) Valid() bool {
	var seen [NumAlgos]bool
	for _, a := range s {
		if a >= NumAlgos || seen[a] {
			return false
		}
		seen[a] = true
	}
	return true
}

// String returns the schedule as a dash separated list of primitive names.
func (s Schedule) String() string {
	names := make([]string, len(s))
	for i, a := range s {
		names[i] = a.String()
	}
	return strings.Join(names, "-")
}

// DayIndex returns the number of whole days between Epoch and the passed
// unix timestamp.  Timestamps before Epoch map to day zero.
func DayIndex(timestamp int64) uint64 {
	if timestamp < Epoch {
		return 0
	}
	return uint64(timestamp-Epoch) / SecondsPerDay
}

// NextPermutation rearranges seq into its lexicographic successor.  When
// seq is the last arrangement (strictly descending) it is rearranged into
// the first one (strictly ascending), so repeated application cycles
// through every permutation.
func NextPermutation(seq []Algo) {
	n := len(seq)
	if n < 2 {
		return
	}

	// Find the rightmost ascent.  With none, i ends up at -1 and the
	// reversal below turns the descending run into the ascending one.
	i := n - 2
	for i >= 0 && seq[i] >= seq[i+1] {
		i--
	}
	if i >= 0 {
		// The suffix after i is descending, so the last element larger
		// than seq[i] is its smallest larger element.
		j := n - 1
		for seq[j] <= seq[i] {
			j--
		}
		seq[i], seq[j] = seq[j], seq[i]
	}

	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		seq[l], seq[r] = seq[r], seq[l]
	}
}

// ScheduleForDay returns the schedule for the passed day index: the
// identity schedule advanced by NextPermutation day times.
//
// Since the identity is the first arrangement, advancing it d times lands
// on the permutation of lexicographic rank d mod 11!, which is decoded
// directly in the factorial number system.
func ScheduleForDay(day uint64) Schedule {
	rank := day % NumSchedules

	remaining := make([]Algo, 0, NumAlgos)
	remaining = append(remaining, IdentitySchedule[:]...)

	var s Schedule
	for i := 0; i < NumAlgos; i++ {
		f := factorials[NumAlgos-1-i]
		pick := rank / f
		rank %= f

		s[i] = remaining[pick]
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return s
}

// ScheduleForTime returns the schedule for the header timestamp.
func ScheduleForTime(timestamp int64) Schedule {
	return ScheduleForDay(DayIndex(timestamp))
}

// scheduleByIteration computes the schedule the slow way by applying
// NextPermutation repeatedly.  It is the reference ScheduleForDay is
// checked against.
func scheduleByIteration(day uint64) Schedule {
	s := IdentitySchedule
	for n := day % NumSchedules; n > 0; n-- {
		NextPermutation(s[:])
	}
	return s
}
