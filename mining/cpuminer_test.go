// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/revolvercoin/revolverd/blockchain"
	"github.com/revolvercoin/revolverd/chaincfg"
	"github.com/revolvercoin/revolverd/x11evo"
)

// nonceHasher scores nonces through a callback instead of hashing.
type nonceHasher func(nonce uint32) (chainhash.Hash, error)

func (f nonceHasher) Hash(header []byte, _ int64) (chainhash.Hash, error) {
	return f(binary.LittleEndian.Uint32(header[nonceOffset:]))
}

// highHash is a digest above every valid target.
var highHash = chainhash.Hash{31: 0xff}

func testHeader(bits uint32) *wire.BlockHeader {
	return &wire.BlockHeader{
		Version:   1,
		PrevBlock: chainhash.Hash{0xaa},
		Timestamp: time.Unix(x11evo.Epoch+100*x11evo.SecondsPerDay, 0),
		Bits:      bits,
	}
}

// TestSolveHeaderRegtest ensures a regression test header is solved with the
// real hash and passes proof-of-work validation.
func TestSolveHeaderRegtest(t *testing.T) {
	t.Parallel()

	params := &chaincfg.RegressionNetParams
	header := testHeader(params.PowLimitBits)
	header.Nonce = math.MaxUint32

	found, stats, err := SolveHeader(context.Background(), header, 2)
	require.NoError(t, err)
	require.True(t, found)
	require.NotZero(t, stats.Hashes)
	require.Zero(t, stats.Unscoreable)

	require.NoError(t, blockchain.CheckProofOfWork(header, params.PowLimit))
}

// TestSolveHeaderSkipsUnscoreable ensures nonces whose digest fails are
// skipped even though the failed digest would satisfy any target.
func TestSolveHeaderSkipsUnscoreable(t *testing.T) {
	t.Parallel()

	errFault := errors.New("primitive fault")
	hasher := nonceHasher(func(nonce uint32) (chainhash.Hash, error) {
		switch {
		case nonce < 5:
			return chainhash.Hash{}, errFault
		case nonce == 7:
			return chainhash.Hash{}, nil
		default:
			return highHash, nil
		}
	})

	header := testHeader(chaincfg.MainNetParams.PowLimitBits)
	found, stats, err := solveHeader(context.Background(), hasher, header,
		0, 20, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint32(7), header.Nonce)
	require.Equal(t, uint64(8), stats.Hashes)
	require.Equal(t, uint64(5), stats.Unscoreable)
}

// TestSolveHeaderExhausted ensures a range without solutions reports false
// and leaves the nonce untouched.
func TestSolveHeaderExhausted(t *testing.T) {
	t.Parallel()

	hasher := nonceHasher(func(uint32) (chainhash.Hash, error) {
		return highHash, nil
	})

	header := testHeader(chaincfg.MainNetParams.PowLimitBits)
	header.Nonce = 99
	found, stats, err := solveHeader(context.Background(), hasher, header,
		10, 1009, 4)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, uint32(99), header.Nonce)
	require.Equal(t, uint64(1000), stats.Hashes)

	// More workers than nonces.
	found, stats, err = solveHeader(context.Background(), hasher, header,
		5, 6, 16)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, uint64(2), stats.Hashes)
}

// TestSolveHeaderCancel ensures a cancelled search stops and reports the
// context error.
func TestSolveHeaderCancel(t *testing.T) {
	t.Parallel()

	hasher := nonceHasher(func(uint32) (chainhash.Hash, error) {
		return highHash, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	header := testHeader(chaincfg.MainNetParams.PowLimitBits)
	found, _, err := solveHeader(ctx, hasher, header, 0, math.MaxUint32, 4)
	require.False(t, found)
	require.ErrorIs(t, err, context.Canceled)
}

// TestSolveHeaderNoTarget ensures headers without a positive target are
// rejected up front.
func TestSolveHeaderNoTarget(t *testing.T) {
	t.Parallel()

	_, _, err := SolveHeader(context.Background(), testHeader(0), 1)
	require.ErrorIs(t, err, ErrNoTarget)
}
