// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"

	"github.com/revolvercoin/revolverd/chaincfg"
)

const (
	defaultLogLevel    = "info"
	defaultLogDirname  = "logs"
	defaultLogFilename = "x11evohash.log"
	defaultNet         = "mainnet"
	defaultVerifyDays  = 365
)

var (
	defaultHomeDir = btcutil.AppDataDir("revolverd", false)
	defaultLogDir  = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options for x11evohash.
//
// See loadConfig for details on the configuration load process.
type config struct {
	Header     string `long:"header" description:"Hex encoded header to hash -- an 80 byte header also supplies the timestamp, height and target checks"`
	Timestamp  int64  `short:"t" long:"timestamp" description:"Unix timestamp selecting the hash schedule -- overrides the time of an 80 byte header"`
	Height     int32  `long:"height" description:"Height of the header, checked against the network checkpoints when set"`
	Schedule   bool   `long:"schedule" description:"Only print the day index and schedule for the timestamp"`
	Bench      int    `long:"bench" description:"Hash the header this many times with each hasher and report the throughput"`
	Verify     bool   `long:"verify" description:"Check the accelerated and portable hashers agree over --verifydays consecutive days"`
	VerifyDays int    `long:"verifydays" description:"Number of day indices --verify checks"`
	NoAccel    bool   `long:"noaccel" description:"Never bind the accelerated hasher"`
	Net        string `long:"net" description:"Network whose proof-of-work limit and checkpoints apply {mainnet, regtest}"`
	LogDir     string `long:"logdir" description:"Directory to log output"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`

	header       []byte
	params       *chaincfg.Params
	timestampSet bool
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace":
		fallthrough
	case "debug":
		fallthrough
	case "info":
		fallthrough
	case "warn":
		fallthrough
	case "error":
		fallthrough
	case "critical":
		return true
	}
	return false
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	// Convert the subsystemLoggers map keys to a slice.
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsystems for stable display.
	sort.Strings(subsystems)
	return subsystems
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// errShowSubsystems is returned by loadConfig when the user asked for the
// list of logging subsystems.
var errShowSubsystems = errors.New("show subsystems")

// parseConfig parses the command line arguments into a config and validates
// it.  It does not touch the logging system so it can be used from tests.
func parseConfig(args []string) (*config, error) {
	cfg := config{
		Height:     -1,
		VerifyDays: defaultVerifyDays,
		Net:        defaultNet,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	// A zero timestamp is valid, so track whether one was given.
	cfg.timestampSet = parser.FindOptionByLongName("timestamp").IsSet()

	if cfg.DebugLevel == "show" {
		return &cfg, errShowSubsystems
	}

	params, err := chaincfg.ParamsForName(cfg.Net)
	if err != nil {
		return nil, fmt.Errorf("invalid --net %q: %w", cfg.Net, err)
	}
	cfg.params = params

	if cfg.Header != "" {
		cfg.header, err = hex.DecodeString(cfg.Header)
		if err != nil {
			return nil, fmt.Errorf("invalid --header: %w", err)
		}
	} else {
		cfg.header = make([]byte, 80)
	}

	if cfg.Bench < 0 {
		return nil, fmt.Errorf("--bench must not be negative")
	}
	if cfg.VerifyDays <= 0 {
		return nil, fmt.Errorf("--verifydays must be positive")
	}

	return &cfg, nil
}

// loadConfig initializes and parses the config using command line options,
// then sets up logging.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse CLI options and overwrite/add any specified options
//  3. Initialize the log rotator and apply the debug levels
func loadConfig() (*config, error) {
	cfg, err := parseConfig(os.Args[1:])
	if err == errShowSubsystems {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		return nil, err
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}
