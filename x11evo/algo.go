// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"fmt"
	"hash"

	"github.com/bitbandi/go-x11/blake"
	"github.com/bitbandi/go-x11/bmw"
	"github.com/bitbandi/go-x11/cubed"
	"github.com/bitbandi/go-x11/echo"
	"github.com/bitbandi/go-x11/groest"
	"github.com/bitbandi/go-x11/jhash"
	"github.com/bitbandi/go-x11/luffa"
	"github.com/bitbandi/go-x11/shavite"
	"github.com/bitbandi/go-x11/simd"
	"github.com/bitbandi/go-x11/skein"
	"golang.org/x/crypto/sha3"
)

// Algo identifies one of the eleven 512-bit hash primitives chained by
// X11Evo.  The numeric values are consensus critical since they define the
// identity ordering the permutation schedule starts from.
type Algo uint8

// These constants define the primitives in their identity order.
const (
	Blake Algo = iota
	BMW
	Groestl
	Skein
	JH
	Keccak
	Luffa
	CubeHash
	SHAvite
	SIMD
	Echo

	// NumAlgos is the number of primitives in the chain.
	NumAlgos = 11
)

// Digest512Size is the size in bytes of the output of every primitive.
const Digest512Size = 64

// Map of Algo values back to their constant names for pretty printing.
var algoStrings = [NumAlgos]string{
	Blake:    "BLAKE",
	BMW:      "BMW",
	Groestl:  "GROESTL",
	Skein:    "SKEIN",
	JH:       "JH",
	Keccak:   "KECCAK",
	Luffa:    "LUFFA",
	CubeHash: "CUBEHASH",
	SHAvite:  "SHAVITE",
	SIMD:     "SIMD",
	Echo:     "ECHO",
}

// String returns the Algo as a human-readable name.
func (a Algo) String() string {
	if a < NumAlgos {
		return algoStrings[a]
	}
	return fmt.Sprintf("Unknown Algo (%d)", uint8(a))
}

// PrimitiveTable maps every Algo to a constructor for its hash.  Each
// constructed hash must produce Digest512Size bytes.
type PrimitiveTable [NumAlgos]func() hash.Hash

// defaultPrimitives is the table used by the package level hashers.
//
// Keccak here is the original submission padding, which is what
// NewLegacyKeccak512 implements and not the FIPS 202 SHA3-512.
var defaultPrimitives = PrimitiveTable{
	Blake:    func() hash.Hash { return blake.New() },
	BMW:      func() hash.Hash { return bmw.New() },
	Groestl:  func() hash.Hash { return groest.New() },
	Skein:    func() hash.Hash { return skein.New() },
	JH:       func() hash.Hash { return jhash.New() },
	Keccak:   sha3.NewLegacyKeccak512,
	Luffa:    func() hash.Hash { return luffa.New() },
	CubeHash: func() hash.Hash { return cubed.New() },
	SHAvite:  func() hash.Hash { return shavite.New() },
	SIMD:     func() hash.Hash { return simd.New() },
	Echo:     func() hash.Hash { return echo.New() },
}

// DefaultPrimitives returns a copy of the primitive table used by Hash.
func DefaultPrimitives() PrimitiveTable {
	return defaultPrimitives
}
