// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a block can have for
	// the main network.  It is the value 0xffff << 224, which is 0x1f00ffff
	// in compact form.
	mainPowLimit = new(big.Int).Lsh(big.NewInt(0xffff), 224)

	// regressionPowLimit is the highest proof of work value a block can
	// have for the regression test network.  It is the value 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// Checkpoint identifies a known good point in the block chain.  The hash is
// the X11Evo proof-of-work digest of the header at that height, so a
// checkpoint pins the hash function as much as the chain.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// Params defines a network by its parameters.  Only the parameters consumed
// by proof-of-work validation and mining are carried here.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// These fields define the header of the first block of the chain.
	// The genesis hash is its X11Evo digest.
	GenesisTime  time.Time
	GenesisBits  uint32
	GenesisNonce uint32
	GenesisHash  *chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// CoinbaseMaturity is the number of blocks required before newly mined
	// coins (coinbase transactions) can be spent.
	CoinbaseMaturity uint16

	// SubsidyReductionInterval is the interval of blocks before the subsidy
	// is reduced.
	SubsidyReductionInterval int32

	// GenerateSupported specifies whether or not CPU mining is allowed.
	GenerateSupported bool

	// Checkpoints ordered from oldest to newest.
	Checkpoints []Checkpoint

	// Address encoding magics
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address
	PrivateKeyID     byte // First byte of a WIF private key

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "8777",

	// Chain parameters
	GenesisTime:              time.Unix(1464436800, 0), // X11Evo day 27
	GenesisBits:              0x1e00ffff,
	GenesisNonce:             24836680,
	GenesisHash:              newHashFromStr("0000004638488c509bcac3bbef81e601c96783f208cb7ca75b54fea5acbaad46"),
	PowLimit:                 mainPowLimit,
	PowLimitBits:             0x1f00ffff,
	CoinbaseMaturity:         100,
	SubsidyReductionInterval: 86400,
	GenerateSupported:        false,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{
		{0, newHashFromStr("0000004638488c509bcac3bbef81e601c96783f208cb7ca75b54fea5acbaad46")},
		{10000, newHashFromStr("000000000127c020e7aa70b19db0d58989927c3606fc84e888d1c90052fdb315")},
		{50000, newHashFromStr("0000000005f8b1855d2502bf0885d1eb91ae9b699c05e07f53e3112bdf7f2c4d")},
		{98719, newHashFromStr("000000004e6a5f1d35bdd28c02a1097b74f2e931f931c55b4fff738ac5cc6658")},
	},

	// Address encoding magics
	PubKeyHashAddrID: 0x00, // starts with 1
	ScriptHashAddrID: 0x05, // starts with 3
	PrivateKeyID:     0x80, // starts with 5 (uncompressed) or K (compressed)

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4}, // starts with xprv
	HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // starts with xpub
}

// RegressionNetParams defines the network parameters for the regression test
// network.  Its proof-of-work limit is low enough that roughly every other
// nonce solves a block, which keeps mining in tests fast.
var RegressionNetParams = Params{
	Name:        "regtest",
	Net:         wire.TestNet,
	DefaultPort: "18777",

	// Chain parameters
	GenesisTime:              time.Unix(1464436800, 0),
	GenesisBits:              0x207fffff,
	GenesisNonce:             0,
	PowLimit:                 regressionPowLimit,
	PowLimitBits:             0x207fffff,
	CoinbaseMaturity:         100,
	SubsidyReductionInterval: 150,
	GenerateSupported:        true,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: nil,

	// Address encoding magics
	PubKeyHashAddrID: 0x6f, // starts with m or n
	ScriptHashAddrID: 0xc4, // starts with 2
	PrivateKeyID:     0xef, // starts with 9 (uncompressed) or c (compressed)

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // starts with tprv
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // starts with tpub
}

// Checkpoint returns the checkpoint at the passed height, or nil when there
// is none.
func (p *Params) Checkpoint(height int32) *Checkpoint {
	for i := range p.Checkpoints {
		if p.Checkpoints[i].Height == height {
			return &p.Checkpoints[i]
		}
	}
	return nil
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where the network name is not
	// one of the registered networks.
	ErrUnknownNet = errors.New("unknown network")
)

var (
	registeredNets = make(map[wire.BitcoinNet]struct{})
	netsByName     = make(map[string]*Params)
)

// Register registers the network parameters for a network.  This may error
// with ErrDuplicateNet if the network is already registered (either due to a
// previous Register call, or the network being one of the default networks).
//
// Network parameters should be registered into this package by a main package
// as early as possible.  Then, library packages may lookup networks or network
// parameters based on inputs and work regardless of the network being standard
// or not.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	if _, ok := netsByName[params.Name]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = struct{}{}
	netsByName[params.Name] = params
	return nil
}

// ParamsForName returns the registered parameters for the passed network
// name.
func ParamsForName(name string) (*Params, error) {
	params, ok := netsByName[name]
	if !ok {
		return nil, ErrUnknownNet
	}
	return params, nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		// Ordinarily I don't like panics in library code since it
		// can take applications down without them having a chance to
		// recover which is extremely annoying, however an exception is
		// being made in this case because the only way this can panic
		// is if there is an error in the hard-coded hashes.  Thus it
		// will only ever potentially panic on init and therefore is
		// 100% predictable.
		panic(err)
	}
	return hash
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainNetParams)
	mustRegister(&RegressionNetParams)
}
