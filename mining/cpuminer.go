// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/btcsuite/btcd/wire"

	"github.com/revolvercoin/revolverd/blockchain"
	"github.com/revolvercoin/revolverd/x11evo"
)

// nonceOffset is the offset of the nonce within a serialized header.
const nonceOffset = wire.MaxBlockHeaderPayload - 4

// ErrNoTarget is returned when the header bits do not encode a positive
// target.
var ErrNoTarget = errors.New("header bits do not encode a positive target")

// SolveStats describes a finished nonce search.
type SolveStats struct {
	// Hashes is the number of digests computed.
	Hashes uint64

	// Unscoreable is the number of nonces skipped because their digest
	// could not be computed.
	Unscoreable uint64
}

// SolveHeader attempts to find a nonce which makes the passed header hash to
// a value no higher than its target.  The search is split across numWorkers
// goroutines, or one per CPU when numWorkers is not positive.  When a
// solution is found true is returned and the nonce field of the passed
// header is updated with the solution.  False is returned if no nonce
// solves the header, or with the context's error if it was cancelled first.
//
// Nonces whose digest cannot be computed are skipped and never treated as
// solutions.
func SolveHeader(ctx context.Context, header *wire.BlockHeader, numWorkers int) (bool, SolveStats, error) {
	return solveHeader(ctx, x11evo.ActiveHasher(), header, 0,
		math.MaxUint32, numWorkers)
}

// solveHeader is SolveHeader using the passed hasher over the nonce range
// [startNonce, stopNonce].
func solveHeader(ctx context.Context, hasher x11evo.Hasher, header *wire.BlockHeader,
	startNonce, stopNonce uint32, numWorkers int) (bool, SolveStats, error) {

	var stats SolveStats

	target := blockchain.CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		return false, stats, ErrNoTarget
	}

	serialized, err := blockchain.SerializeHeader(header)
	if err != nil {
		return false, stats, err
	}
	timestamp := header.Timestamp.Unix()

	span := uint64(stopNonce-startNonce) + 1
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if uint64(numWorkers) > span {
		numWorkers = int(span)
	}

	// sbResult is used by the solver goroutines to send results.
	type sbResult struct {
		found bool
		nonce uint32
	}

	var (
		hashes      atomic.Uint64
		unscoreable atomic.Uint64
	)

	// solver accepts a nonce range to test.  It is intended to be run as
	// a goroutine.
	quit := make(chan struct{})
	results := make(chan sbResult, numWorkers)
	solver := func(startNonce, stopNonce uint32) {
		// Every solver varies the nonce in its own copy of the
		// serialized header.
		buf := make([]byte, len(serialized))
		copy(buf, serialized)

		for i := startNonce; i >= startNonce && i <= stopNonce; i++ {
			select {
			case <-quit:
				results <- sbResult{false, 0}
				return
			default:
			}

			binary.LittleEndian.PutUint32(buf[nonceOffset:], i)
			hash, err := hasher.Hash(buf, timestamp)
			hashes.Add(1)
			if err != nil {
				unscoreable.Add(1)
				log.Debugf("Skipping unscoreable nonce %d: %v",
					i, err)
				continue
			}
			if blockchain.HashToBig(&hash).Cmp(target) <= 0 {
				results <- sbResult{true, i}
				return
			}
		}
		results <- sbResult{false, 0}
	}

	noncesPerWorker := span / uint64(numWorkers)
	for i := uint64(0); i < uint64(numWorkers); i++ {
		rangeStart := uint64(startNonce) + noncesPerWorker*i
		rangeStop := rangeStart + noncesPerWorker - 1
		if i == uint64(numWorkers)-1 {
			rangeStop = uint64(stopNonce)
		}
		go solver(uint32(rangeStart), uint32(rangeStop))
	}

	// Stop the workers when the context is cancelled.
	var closeOnce sync.Once
	stop := func() { closeOnce.Do(func() { close(quit) }) }
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	var (
		found bool
		nonce uint32
	)
	for i := 0; i < numWorkers; i++ {
		result := <-results
		if result.found && !found {
			found, nonce = true, result.nonce
			stop()
		}
	}

	stats.Hashes = hashes.Load()
	stats.Unscoreable = unscoreable.Load()
	log.Debugf("Nonce search finished after %d hashes (%d unscoreable)",
		stats.Hashes, stats.Unscoreable)

	if found {
		header.Nonce = nonce
		return true, stats, nil
	}
	if err := ctx.Err(); err != nil {
		return false, stats, err
	}
	return false, stats, nil
}
