package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds a structured console logger writing to out. The TUI owns
// stdout, so interactive runs pass a log file and CLI commands pass
// stderr.
func New(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).With().
		Timestamp().
		Str("app", "shuati").
		Logger().
		Level(lvl)
}
