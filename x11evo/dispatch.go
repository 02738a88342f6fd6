// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// NoAccelEnvVar is the environment variable that, when set to any non-empty
// value, keeps the accelerated hasher from being bound.
const NoAccelEnvVar = "REVOLVERD_NOACCEL"

var (
	// bindOnce guards the one time selection of the active hasher.
	bindOnce sync.Once

	// active and accelerated are written once inside bindOnce and only
	// read afterwards.
	active      Hasher
	accelerated bool

	// noAccel is set by DisableAcceleration.
	noAccel atomic.Bool
)

// DisableAcceleration keeps the accelerated hasher from being bound.  It
// only has an effect when called before the first digest is computed.
func DisableAcceleration() {
	noAccel.Store(true)
}

// ActiveHasher returns the hasher used by Hash, binding it on first use.
func ActiveHasher() Hasher {
	bindOnce.Do(bind)
	return active
}

// Accelerated returns whether the accelerated hasher is bound.
func Accelerated() bool {
	bindOnce.Do(bind)
	return accelerated
}

// Hash returns the X11Evo proof-of-work digest of the serialized header
// stamped with the passed unix timestamp.
//
// A non-nil error means the header is unscoreable.  The returned digest is
// then the zero hash, which must never be compared against a target.
func Hash(header []byte, timestamp int64) (chainhash.Hash, error) {
	return ActiveHasher().Hash(header, timestamp)
}

// bind selects the active hasher.  The accelerated hasher is only bound when
// it reproduces the portable hasher on the self-test vectors.
func bind() {
	portable := NewPortableHasher()
	active = portable

	if noAccel.Load() || os.Getenv(NoAccelEnvVar) != "" {
		log.Infof("Accelerated x11evo hasher disabled, using portable " +
			"hasher")
		return
	}

	accel := NewAcceleratedHasher()
	err := CheckEquivalence(accel, portable, selfTestHeaders(),
		selfTestTimestamps())
	if err != nil {
		log.Infof("Accelerated x11evo hasher unavailable, using "+
			"portable hasher: %v", err)
		return
	}

	active = accel
	accelerated = true
	log.Infof("Bound accelerated x11evo hasher")
}

// CheckEquivalence hashes every header at every timestamp with both hashers
// and returns an ErrAccelerationUnavailable error describing the first
// input they disagree on.  Either hasher failing counts as a disagreement.
func CheckEquivalence(candidate, reference Hasher, headers [][]byte,
	timestamps []int64) error {

	for _, header := range headers {
		for _, ts := range timestamps {
			want, err := reference.Hash(header, ts)
			if err != nil {
				str := fmt.Sprintf("reference hasher failed "+
					"at timestamp %d", ts)
				return hashError(ErrAccelerationUnavailable,
					str, err)
			}
			got, err := candidate.Hash(header, ts)
			if err != nil {
				str := fmt.Sprintf("candidate hasher failed "+
					"at timestamp %d", ts)
				return hashError(ErrAccelerationUnavailable,
					str, err)
			}
			if got != want {
				str := fmt.Sprintf("digest mismatch at "+
					"timestamp %d (day %d): got %x, want %x",
					ts, DayIndex(ts), got[:], want[:])
				return hashError(ErrAccelerationUnavailable,
					str, nil)
			}
		}
	}
	return nil
}

// selfTestHeaders returns the headers used to vet the accelerated hasher.
func selfTestHeaders() [][]byte {
	zero := make([]byte, 80)
	counting := make([]byte, 80)
	for i := range counting {
		counting[i] = byte(i)
	}
	return [][]byte{zero, counting, {}}
}

// selfTestTimestamps returns timestamps spanning several day indices,
// including one before Epoch.
func selfTestTimestamps() []int64 {
	return []int64{
		Epoch - 1,
		Epoch,
		Epoch + SecondsPerDay,
		Epoch + 27*SecondsPerDay,
		Epoch + 1000*SecondsPerDay + 1,
		Epoch + 3650*SecondsPerDay,
	}
}
