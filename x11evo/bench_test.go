// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"encoding/binary"
	"testing"
)

// benchmarkHasher hashes an 80 byte header while varying the nonce, which is
// what a miner does.
func benchmarkHasher(b *testing.B, h Hasher) {
	header := make([]byte, 80)
	ts := int64(Epoch + 1000*SecondsPerDay)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		binary.LittleEndian.PutUint32(header[76:], uint32(i))
		if _, err := h.Hash(header, ts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPortableHasher benchmarks the portable hasher.
func BenchmarkPortableHasher(b *testing.B) {
	benchmarkHasher(b, NewPortableHasher())
}

// BenchmarkAcceleratedHasher benchmarks the accelerated hasher.
func BenchmarkAcceleratedHasher(b *testing.B) {
	benchmarkHasher(b, NewAcceleratedHasher())
}

// BenchmarkScheduleForDay benchmarks deriving a schedule without the cache.
func BenchmarkScheduleForDay(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ScheduleForDay(uint64(i))
	}
}

// BenchmarkScheduleCache benchmarks cached schedule lookups.
func BenchmarkScheduleCache(b *testing.B) {
	cache := NewScheduleCache()
	cache.Get(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(1000)
	}
}
