package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI's diagnostic logger. Verbose mode adds debug
// lines and timestamps.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "reelmatch",
		ReportTimestamp: verbose,
	})
}
