// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"fmt"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Digest512 is the output of a single primitive and of the whole chain.
type Digest512 [Digest512Size]byte

// Finalize truncates the chain digest to the 256-bit proof-of-work value.
func Finalize(d Digest512) chainhash.Hash {
	var h chainhash.Hash
	copy(h[:], d[:chainhash.HashSize])
	return h
}

// Chain folds header through the default primitives in schedule order and
// returns the digest of the last one.
func Chain(header []byte, s Schedule) (Digest512, error) {
	return chainWith(&defaultPrimitives, header, s)
}

// chainWith is Chain with a fresh instance of every primitive taken from
// the passed table.
func chainWith(table *PrimitiveTable, header []byte, s Schedule) (Digest512, error) {
	return newPrimitiveSet(table).chain(header, s)
}

// primitiveSet holds one instance of every primitive plus the scratch
// space needed to run a chain through them.  A set is not safe for
// concurrent use.
type primitiveSet struct {
	hashes [NumAlgos]hash.Hash
	bufs   [2][Digest512Size]byte
}

// newPrimitiveSet returns a set with an instance of every primitive in the
// passed table.
func newPrimitiveSet(table *PrimitiveTable) *primitiveSet {
	set := &primitiveSet{}
	for a, newHash := range table {
		if newHash != nil {
			set.hashes[a] = newHash()
		}
	}
	return set
}

// chain runs header through the set's primitives in schedule order.
func (p *primitiveSet) chain(header []byte, s Schedule) (Digest512, error) {
	if !s.Valid() {
		str := fmt.Sprintf("schedule %v is not a permutation of "+
			"the %d primitives", s, NumAlgos)
		return Digest512{}, hashError(ErrInvalidSchedule, str, nil)
	}

	in := header
	for i, a := range s {
		out := p.bufs[i%2][:0]
		sum, err := runPrimitive(p.hashes[a], a, in, out)
		if err != nil {
			return Digest512{}, err
		}
		in = sum
	}

	var d Digest512
	copy(d[:], in)
	return d, nil
}

// runPrimitive resets h, hashes in with it and appends the digest to out.
// Any fault of the primitive, including a panic, is reported as
// ErrPrimitiveFailure.
func runPrimitive(h hash.Hash, a Algo, in, out []byte) (sum []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			str := fmt.Sprintf("primitive %v panicked", a)
			sum, err = nil, hashError(ErrPrimitiveFailure, str,
				panicError(r))
		}
	}()

	if h == nil {
		str := fmt.Sprintf("primitive %v is not bound", a)
		return nil, hashError(ErrPrimitiveFailure, str, nil)
	}

	h.Reset()
	if _, err := h.Write(in); err != nil {
		str := fmt.Sprintf("primitive %v failed to absorb input", a)
		return nil, hashError(ErrPrimitiveFailure, str, err)
	}
	sum = h.Sum(out)
	if len(sum) != Digest512Size {
		str := fmt.Sprintf("primitive %v produced %d bytes, want %d",
			a, len(sum), Digest512Size)
		return nil, hashError(ErrPrimitiveFailure, str, nil)
	}
	return sum, nil
}
