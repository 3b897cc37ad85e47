package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds a command's logger. The level comes from NYANKO_LOG_LEVEL
// and defaults to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv(EnvLogLevel, "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}
