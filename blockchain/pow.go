// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"fmt"
	"math/big"

	btcchain "github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/revolvercoin/revolverd/chaincfg"
	"github.com/revolvercoin/revolverd/x11evo"
)

// SerializeHeader returns the 80 byte wire encoding of the header, which is
// the input of the proof-of-work hash.
func SerializeHeader(header *wire.BlockHeader) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(wire.MaxBlockHeaderPayload)
	if err := header.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PowHash returns the X11Evo proof-of-work digest of the header.  The
// schedule is selected by the header's own timestamp.
func PowHash(header *wire.BlockHeader) (chainhash.Hash, error) {
	return powHashWith(x11evo.ActiveHasher(), header)
}

// powHashWith is PowHash using the passed hasher.  Any failure is wrapped in
// an ErrUnscoreableHeader rule error.
func powHashWith(hasher x11evo.Hasher, header *wire.BlockHeader) (chainhash.Hash, error) {
	serialized, err := SerializeHeader(header)
	if err != nil {
		str := "unable to serialize header"
		return chainhash.Hash{}, RuleError{ErrUnscoreableHeader, str, err}
	}

	hash, err := hasher.Hash(serialized, header.Timestamp.Unix())
	if err != nil {
		str := fmt.Sprintf("unable to compute proof of work of header "+
			"with nonce %d", header.Nonce)
		return chainhash.Hash{}, RuleError{ErrUnscoreableHeader, str, err}
	}
	return hash, nil
}

// HashToBig converts a proof-of-work digest into a big.Int that can be used
// to perform math comparisons.
func HashToBig(hash *chainhash.Hash) *big.Int {
	return btcchain.HashToBig(hash)
}

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 32-bit number.
func CompactToBig(compact uint32) *big.Int {
	return btcchain.CompactToBig(compact)
}

// checkTarget ensures the compact target is in the range (0, powLimit] and
// returns it.
func checkTarget(bits uint32, powLimit *big.Int) (*big.Int, error) {
	// The target difficulty must be larger than zero.
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		str := fmt.Sprintf("block target difficulty of %064x is too low",
			target)
		return nil, ruleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must be less than the maximum allowed.
	if target.Cmp(powLimit) > 0 {
		str := fmt.Sprintf("block target difficulty of %064x is "+
			"higher than max of %064x", target, powLimit)
		return nil, ruleError(ErrUnexpectedDifficulty, str)
	}
	return target, nil
}

// CheckProofOfWork ensures the header's bits are in the valid range and that
// its X11Evo digest is no higher than the target they encode.  A header whose
// digest cannot be computed fails with ErrUnscoreableHeader.
func CheckProofOfWork(header *wire.BlockHeader, powLimit *big.Int) error {
	_, err := checkProofOfWork(x11evo.ActiveHasher(), header, powLimit)
	return err
}

// checkProofOfWork is CheckProofOfWork using the passed hasher.  It also
// returns the computed digest.
func checkProofOfWork(hasher x11evo.Hasher, header *wire.BlockHeader,
	powLimit *big.Int) (chainhash.Hash, error) {

	target, err := checkTarget(header.Bits, powLimit)
	if err != nil {
		return chainhash.Hash{}, err
	}

	hash, err := powHashWith(hasher, header)
	if err != nil {
		log.Debugf("Rejecting unscoreable header: %v", err)
		return chainhash.Hash{}, err
	}

	// The block hash must be less than the claimed target.
	hashNum := HashToBig(&hash)
	if hashNum.Cmp(target) > 0 {
		str := fmt.Sprintf("block hash of %064x is higher than "+
			"expected max of %064x", hashNum, target)
		return chainhash.Hash{}, ruleError(ErrHighHash, str)
	}
	return hash, nil
}

// VerifyCheckpoint ensures the proof-of-work digest of the header matches the
// checkpoint at the passed height.  Heights without a checkpoint always pass.
func VerifyCheckpoint(params *chaincfg.Params, height int32, header *wire.BlockHeader) error {
	return verifyCheckpoint(x11evo.ActiveHasher(), params, height, header)
}

// verifyCheckpoint is VerifyCheckpoint using the passed hasher.
func verifyCheckpoint(hasher x11evo.Hasher, params *chaincfg.Params,
	height int32, header *wire.BlockHeader) error {

	checkpoint := params.Checkpoint(height)
	if checkpoint == nil {
		return nil
	}

	hash, err := powHashWith(hasher, header)
	if err != nil {
		return err
	}
	if !hash.IsEqual(checkpoint.Hash) {
		str := fmt.Sprintf("block at height %d does not match "+
			"checkpoint hash - got %v, expected %v", height, hash,
			checkpoint.Hash)
		return ruleError(ErrBadCheckpoint, str)
	}

	log.Debugf("Verified checkpoint at height %d/block %s", height, hash)
	return nil
}
