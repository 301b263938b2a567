// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logger provides the subsystem-tagged loggers used across the
// ghostdagsim packages (dag, node, sim). Each package obtains its logger
// by subsystem tag instead of constructing its own, so log level can be
// tuned per concern from one place (see SetLogLevel/SetLogLevels).
package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/btcsuite/btclog"
)

// backendLog is the logging backend used to create all subsystem loggers.
// Unlike a long-running node, ghostdagsim has no persistence component
// (spec Non-goal), so there is nothing for a file rotator to serve --
// logs go to stdout only.
var backendLog = btclog.NewBackend(os.Stdout)

// Loggers per subsystem. When adding a new subsystem, add the variable
// here and to the subsystemLoggers map below.
var (
	dagLog  = backendLog.Logger("DAG")
	blueLog = backendLog.Logger("BLUE")
	nodeLog = backendLog.Logger("NODE")
	simLog  = backendLog.Logger("SIM")
)

// SubsystemTags is an enum of all subsystem tags known to the logger.
var SubsystemTags = struct {
	DAG,
	BLUE,
	NODE,
	SIM string
}{
	DAG:  "DAG",
	BLUE: "BLUE",
	NODE: "NODE",
	SIM:  "SIM",
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	SubsystemTags.DAG:  dagLog,
	SubsystemTags.BLUE: blueLog,
	SubsystemTags.NODE: nodeLog,
	SubsystemTags.SIM:  simLog,
}

// Get returns the logger for a specific subsystem.
func Get(tag string) (logger btclog.Logger, ok bool) {
	logger, ok = subsystemLoggers[tag]
	return
}

// SetLogLevel sets the logging level for the given subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for every subsystem logger.
func SetLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported logging
// subsystems.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetDebugLevels attempts to parse the specified debug level and
// set the levels accordingly. debugLevel may either be a single level
// applied to every subsystem ("debug") or a comma-separated list of
// subsystem=level pairs ("DAG=debug,SIM=trace").
func ParseAndSetDebugLevels(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		SetLogLevels(debugLevel)
		return nil
	}

	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		if _, exists := Get(subsysID); !exists {
			return fmt.Errorf("the specified subsystem [%s] is invalid -- supported subsystems %s",
				subsysID, strings.Join(SupportedSubsystems(), ", "))
		}

		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", logLevel)
		}

		SetLogLevel(subsysID, logLevel)
	}

	return nil
}

func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}
