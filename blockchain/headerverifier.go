// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/lru"

	"github.com/revolvercoin/revolverd/chaincfg"
	"github.com/revolvercoin/revolverd/x11evo"
)

// DefaultVerifiedHeaders is the default number of headers a HeaderVerifier
// remembers as having passed the proof-of-work check.
const DefaultVerifiedHeaders = 2048

// HeaderVerifier checks the proof of work of headers for one network and
// remembers the most recent headers that passed, so headers relayed more
// than once are only hashed once.  Failures are never remembered.
//
// It is safe for concurrent access.
type HeaderVerifier struct {
	params   *chaincfg.Params
	hasher   x11evo.Hasher
	verified lru.Cache
}

// NewHeaderVerifier returns a verifier for the passed network that remembers
// up to maxVerified headers.  A nil hasher uses the package level X11Evo
// hasher.
func NewHeaderVerifier(params *chaincfg.Params, hasher x11evo.Hasher,
	maxVerified uint) *HeaderVerifier {

	if hasher == nil {
		hasher = x11evo.ActiveHasher()
	}
	return &HeaderVerifier{
		params:   params,
		hasher:   hasher,
		verified: lru.NewCache(maxVerified),
	}
}

// CheckHeader ensures the header satisfies its own target and the network's
// proof-of-work limit.
func (v *HeaderVerifier) CheckHeader(header *wire.BlockHeader) error {
	key, err := headerKey(header)
	if err != nil {
		str := "unable to serialize header"
		return RuleError{ErrUnscoreableHeader, str, err}
	}
	if v.verified.Contains(key) {
		return nil
	}

	hash, err := checkProofOfWork(v.hasher, header, v.params.PowLimit)
	if err != nil {
		return err
	}
	v.verified.Add(key)

	log.Tracef("Verified proof of work %v for %s header", hash,
		v.params.Name)
	return nil
}

// IsVerified returns whether the header is among the remembered headers that
// passed the proof-of-work check.
func (v *HeaderVerifier) IsVerified(header *wire.BlockHeader) bool {
	key, err := headerKey(header)
	if err != nil {
		return false
	}
	return v.verified.Contains(key)
}

// headerKey returns the serialized header as a comparable cache key.
func headerKey(header *wire.BlockHeader) ([wire.MaxBlockHeaderPayload]byte, error) {
	var key [wire.MaxBlockHeaderPayload]byte
	serialized, err := SerializeHeader(header)
	if err != nil {
		return key, err
	}
	copy(key[:], serialized)
	return key, nil
}

// VerifyCheckpoint ensures the header matches the network checkpoint at the
// passed height, if any.
func (v *HeaderVerifier) VerifyCheckpoint(height int32, header *wire.BlockHeader) error {
	return verifyCheckpoint(v.hasher, v.params, height, header)
}
