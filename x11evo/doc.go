// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package x11evo implements the X11Evo proof-of-work hash.

X11Evo chains eleven 512-bit hash primitives (BLAKE, BMW, Groestl, Skein, JH,
Keccak, Luffa, CubeHash, SHAvite, SIMD and ECHO) and truncates the last digest
to 256 bits.  Unlike X11 the order of the chain is not fixed.  It is derived
from the header timestamp: the number of whole days since Epoch selects the
permutation of lexicographic rank day mod 11! over the identity order above.

The output is consensus critical.  Any two implementations must agree on it
bit for bit for every header and timestamp, so every hasher in this package
is checked against the portable reference implementation.

# Hashers

Hash dispatches to the active Hasher.  On first use the package binds the
AcceleratedHasher, which pools primitive instances, provided it reproduces
the PortableHasher on a set of self-test vectors.  Otherwise, or after
DisableAcceleration, the PortableHasher is used.  The choice is made once per
process.

# Errors

A digest is never returned alongside an error.  Failures are of type
HashError and carry an ErrorCode, so callers can tell a faulting primitive
(ErrPrimitiveFailure) from any other fault (ErrUnexpectedFault).  Either way
the header must be treated as unscoreable.
*/
package x11evo
