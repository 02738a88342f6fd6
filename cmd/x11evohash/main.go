// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/btcsuite/btcd/wire"

	"github.com/revolvercoin/revolverd/blockchain"
	"github.com/revolvercoin/revolverd/x11evo"
)

// hasherName returns a short name for the passed hasher.
func hasherName(h x11evo.Hasher) string {
	switch h.(type) {
	case *x11evo.AcceleratedHasher:
		return "accelerated"
	case *x11evo.PortableHasher:
		return "portable"
	default:
		return fmt.Sprintf("%T", h)
	}
}

// parseHeader decodes the header when it is exactly one wire block header
// long.  Other inputs are hashed as opaque bytes.
func parseHeader(serialized []byte) *wire.BlockHeader {
	if len(serialized) != wire.MaxBlockHeaderPayload {
		return nil
	}
	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(serialized)); err != nil {
		return nil
	}
	return &header
}

// run performs the operations selected by cfg and writes the results to w.
func run(cfg *config, w io.Writer) error {
	if cfg.NoAccel {
		x11evo.DisableAcceleration()
	}

	header := parseHeader(cfg.header)
	timestamp := cfg.Timestamp
	if header != nil && !cfg.timestampSet {
		timestamp = header.Timestamp.Unix()
	}

	day := x11evo.DayIndex(timestamp)
	fmt.Fprintf(w, "timestamp: %d\n", timestamp)
	fmt.Fprintf(w, "day index: %d\n", day)
	fmt.Fprintf(w, "schedule:  %v\n", x11evo.ScheduleForDay(day))
	if cfg.Schedule {
		return nil
	}

	hash, err := x11evo.Hash(cfg.header, timestamp)
	if err != nil {
		return fmt.Errorf("unable to hash header: %w", err)
	}
	fmt.Fprintf(w, "hasher:    %s\n", hasherName(x11evo.ActiveHasher()))
	fmt.Fprintf(w, "digest:    %v\n", hash)

	if header != nil && timestamp == header.Timestamp.Unix() {
		err := blockchain.CheckProofOfWork(header, cfg.params.PowLimit)
		if err != nil {
			fmt.Fprintf(w, "pow:       fail (%v)\n", err)
		} else {
			fmt.Fprintf(w, "pow:       ok (%s)\n", cfg.params.Name)
		}

		if cfg.Height >= 0 && cfg.params.Checkpoint(cfg.Height) != nil {
			err := blockchain.VerifyCheckpoint(cfg.params, cfg.Height,
				header)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "checkpoint: height %d ok\n", cfg.Height)
		}
	}

	if cfg.Verify {
		if err := verify(cfg, timestamp, w); err != nil {
			return err
		}
	}

	if cfg.Bench > 0 {
		bench(cfg, timestamp, w)
	}
	return nil
}

// verify checks the accelerated and portable hashers agree on the header for
// cfg.VerifyDays consecutive days starting at the day of timestamp.
func verify(cfg *config, timestamp int64, w io.Writer) error {
	start := x11evo.DayIndex(timestamp)
	timestamps := make([]int64, 0, cfg.VerifyDays+1)
	timestamps = append(timestamps, x11evo.Epoch-1)
	for i := 0; i < cfg.VerifyDays; i++ {
		day := int64(start) + int64(i)
		timestamps = append(timestamps,
			x11evo.Epoch+day*x11evo.SecondsPerDay)
	}

	err := x11evo.CheckEquivalence(x11evo.NewAcceleratedHasher(),
		x11evo.NewPortableHasher(), [][]byte{cfg.header}, timestamps)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "verify:    accelerated and portable agree on days "+
		"%d through %d\n", start, start+uint64(cfg.VerifyDays)-1)
	return nil
}

// bench hashes the header cfg.Bench times with each hasher, varying the
// nonce when the header is long enough to have one.
func bench(cfg *config, timestamp int64, w io.Writer) {
	hashers := []x11evo.Hasher{
		x11evo.NewPortableHasher(),
		x11evo.NewAcceleratedHasher(),
	}

	buf := make([]byte, len(cfg.header))
	copy(buf, cfg.header)
	for _, h := range hashers {
		start := time.Now()
		var failed int
		for i := 0; i < cfg.Bench; i++ {
			if len(buf) >= wire.MaxBlockHeaderPayload {
				binary.LittleEndian.PutUint32(buf[76:], uint32(i))
			}
			if _, err := h.Hash(buf, timestamp); err != nil {
				failed++
			}
		}
		elapsed := time.Since(start)
		rate := float64(cfg.Bench) / elapsed.Seconds()
		fmt.Fprintf(w, "bench:     %-11s %d hashes in %v (%.0f H/s, "+
			"%d failed)\n", hasherName(h), cfg.Bench,
			elapsed.Round(time.Millisecond), rate, failed)
	}
}

func x11evohashMain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	mainLog.Debugf("Hashing %d byte header on %s", len(cfg.header),
		cfg.params.Name)
	return run(cfg, os.Stdout)
}

func main() {
	if err := x11evohashMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
