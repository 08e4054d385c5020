// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logger provides the configurable logger shared by the secp256k1
// packages.
//
// The logger is a github.com/rs/zerolog logger and is disabled by default, so
// the library is silent unless an application opts in.  Secret material (keys,
// nonces, shared secrets) is never logged.
package logger

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// logger is swapped atomically so the setters may run while other goroutines
// are signing.
var logger atomic.Pointer[zerolog.Logger]

func init() {
	Disable()
}

// SetOutput enables logging to w at debug level with timestamps.
func SetOutput(w io.Writer) {
	Set(zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger())
}

// SetConsole enables human-friendly logging to stderr at the given level.
func SetConsole(level zerolog.Level) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	Set(zerolog.New(output).Level(level).With().Timestamp().Logger())
}

// Set allows a user to override the global logger.  It is safe to call
// concurrently with Logger.
func Set(l zerolog.Logger) {
	logger.Store(&l)
}

// Disable disables logging.
func Disable() {
	Set(zerolog.Nop())
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return *logger.Load()
}
