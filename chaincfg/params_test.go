// Copyright (c) 2016 The btcsuite developers
// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// TestMainNetPowLimit ensures the mainnet limit and its compact form agree.
func TestMainNetPowLimit(t *testing.T) {
	require.Zero(t, blockchain.CompactToBig(MainNetParams.PowLimitBits).
		Cmp(MainNetParams.PowLimit))
	require.Equal(t, MainNetParams.PowLimitBits,
		blockchain.BigToCompact(MainNetParams.PowLimit))

	// The genesis target must not exceed the limit.
	genesisTarget := blockchain.CompactToBig(MainNetParams.GenesisBits)
	require.True(t, genesisTarget.Cmp(MainNetParams.PowLimit) <= 0)
}

// TestCheckpoints ensures checkpoints are ordered and retrievable by height.
func TestCheckpoints(t *testing.T) {
	for _, params := range []*Params{&MainNetParams, &RegressionNetParams} {
		for i := 1; i < len(params.Checkpoints); i++ {
			require.Greater(t, params.Checkpoints[i].Height,
				params.Checkpoints[i-1].Height)
		}
		for _, cp := range params.Checkpoints {
			got := params.Checkpoint(cp.Height)
			require.NotNil(t, got)
			require.Equal(t, cp.Hash, got.Hash)
		}
	}

	cp := MainNetParams.Checkpoint(0)
	require.NotNil(t, cp)
	require.Equal(t, MainNetParams.GenesisHash, cp.Hash)
	require.Equal(t, "0000004638488c509bcac3bbef81e601c96783f208cb7ca75b54fea5acbaad46",
		cp.Hash.String())
	require.Nil(t, MainNetParams.Checkpoint(1))
}

// TestRegister ensures duplicate registrations are rejected and registered
// networks can be looked up by name.
func TestRegister(t *testing.T) {
	params, err := ParamsForName("mainnet")
	require.NoError(t, err)
	require.Same(t, &MainNetParams, params)

	params, err = ParamsForName("regtest")
	require.NoError(t, err)
	require.Same(t, &RegressionNetParams, params)

	_, err = ParamsForName("nosuchnet")
	require.ErrorIs(t, err, ErrUnknownNet)

	require.ErrorIs(t, Register(&MainNetParams), ErrDuplicateNet)

	dup := RegressionNetParams
	dup.Net = wire.SimNet
	require.ErrorIs(t, Register(&dup), ErrDuplicateNet)

	// Custom networks are removed again so the test can be repeated in
	// the same process.
	custom := RegressionNetParams
	custom.Name = "customnet"
	custom.Net = wire.BitcoinNet(0xdeadbeef)
	defer unregister(&custom)
	for i := 0; i < 2; i++ {
		require.NoErrorf(t, Register(&custom), "pass %d", i)
		params, err = ParamsForName("customnet")
		require.NoError(t, err)
		require.Same(t, &custom, params)
		require.ErrorIs(t, Register(&custom), ErrDuplicateNet)
		unregister(&custom)
	}
	_, err = ParamsForName("customnet")
	require.ErrorIs(t, err, ErrUnknownNet)
}

// unregister removes a network added by a test from the registry.
func unregister(params *Params) {
	delete(registeredNets, params.Net)
	delete(netsByName, params.Name)
}
