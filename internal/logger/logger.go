package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes the global zerolog logger based on environment configuration.
//   - level: log level string (trace, debug, info, warn, error, fatal, panic)
//   - format: "json" for production, "pretty" for human-readable dev output
//
// Returns the configured logger instance writing to stdout.
func Setup(level, format string) zerolog.Logger {
	return SetupWithWriter(level, format, os.Stdout)
}

// SetupWithWriter is Setup with an explicit destination. The terminal UI
// uses it to keep log lines off the screen it is drawing.
func SetupWithWriter(level, format string, out io.Writer) zerolog.Logger {
	var writer io.Writer

	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    out != os.Stdout,
		}
	} else {
		writer = out
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}
