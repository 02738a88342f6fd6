// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Hasher computes the X11Evo proof-of-work digest of a serialized header
// stamped with the passed unix timestamp.
//
// Implementations must be safe for concurrent use and every implementation
// must return the same digest for the same inputs.  On failure the returned
// digest is the zero hash and must not be used.
type Hasher interface {
	Hash(header []byte, timestamp int64) (chainhash.Hash, error)
}

// recoverFault turns a panic escaping a hasher into an ErrUnexpectedFault
// and clears the digest.  It must be deferred directly.
func recoverFault(digest *chainhash.Hash, err *error) {
	if r := recover(); r != nil {
		*digest = chainhash.Hash{}
		*err = hashError(ErrUnexpectedFault, "unexpected fault "+
			"computing x11evo digest", panicError(r))
	}
}

// PortableHasher is the reference Hasher.  Every call constructs fresh
// primitive instances.
type PortableHasher struct {
	table *PrimitiveTable
	cache *ScheduleCache
}

// Ensure PortableHasher implements the Hasher interface.
var _ Hasher = (*PortableHasher)(nil)

// NewPortableHasher returns a portable hasher backed by the default
// primitives and the shared schedule cache.
func NewPortableHasher() *PortableHasher {
	return newPortableHasher(&defaultPrimitives, schedules)
}

// newPortableHasher returns a portable hasher with the passed primitives.
// A nil cache makes every call derive its schedule from scratch.
func newPortableHasher(table *PrimitiveTable, cache *ScheduleCache) *PortableHasher {
	return &PortableHasher{table: table, cache: cache}
}

// Hash returns the X11Evo digest of header.
//
// This is part of the Hasher interface.
func (h *PortableHasher) Hash(header []byte, timestamp int64) (digest chainhash.Hash, err error) {
	defer recoverFault(&digest, &err)

	var s Schedule
	if h.cache != nil {
		s = h.cache.ForTime(timestamp)
	} else {
		s = ScheduleForTime(timestamp)
	}

	d, err := chainWith(h.table, header, s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return Finalize(d), nil
}

// AcceleratedHasher reuses primitive instances and scratch buffers across
// calls, which removes all per-primitive allocations from a nonce search.
// It honors the timestamp schedule exactly like PortableHasher.
type AcceleratedHasher struct {
	cache *ScheduleCache
	sets  sync.Pool
}

// Ensure AcceleratedHasher implements the Hasher interface.
var _ Hasher = (*AcceleratedHasher)(nil)

// NewAcceleratedHasher returns an accelerated hasher backed by the default
// primitives and the shared schedule cache.
func NewAcceleratedHasher() *AcceleratedHasher {
	return newAcceleratedHasher(&defaultPrimitives, schedules)
}

// newAcceleratedHasher returns an accelerated hasher with the passed
// primitives and schedule cache.
func newAcceleratedHasher(table *PrimitiveTable, cache *ScheduleCache) *AcceleratedHasher {
	h := &AcceleratedHasher{cache: cache}
	h.sets.New = func() interface{} {
		return newPrimitiveSet(table)
	}
	return h
}

// Hash returns the X11Evo digest of header.
//
// This is part of the Hasher interface.
func (h *AcceleratedHasher) Hash(header []byte, timestamp int64) (digest chainhash.Hash, err error) {
	defer recoverFault(&digest, &err)

	set := h.sets.Get().(*primitiveSet)
	d, err := set.chain(header, h.cache.ForTime(timestamp))
	if err != nil {
		// The set is dropped since a faulted primitive may be left in
		// an unknown state.
		return chainhash.Hash{}, err
	}
	h.sets.Put(set)

	return Finalize(d), nil
}
