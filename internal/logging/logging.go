// Package logging configures the compiler driver's structured logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console logger writing to w, enabling debug-level output
// when debug is true. The zero value of w is treated as os.Stderr.
func New(w io.Writer, debug bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Discard is a logger that drops every event, for callers (tests, library
// use of package codegen) that have no interest in diagnostic output.
var Discard = zerolog.Nop()
