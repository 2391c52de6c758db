// Package logging sets up the process logger and hands out component
// loggers. The TUI always logs to a file: writing to stdout would corrupt
// the alt screen.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger and returns a closer for the log
// file. Level is one of: debug, info, warn, error, fatal. An empty file
// discards all output, keeping the terminal surface clean.
func Setup(level string, file string) (func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return closer, fmt.Errorf("parse log level: %w", err)
	}

	var writer *os.File
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return closer, fmt.Errorf("create logs dir: %w", err)
		}

		writer, err = os.Create(file)
		if err != nil {
			return closer, err
		}
		closer = func() { _ = writer.Close() }
	}

	if writer == nil {
		log.Logger = zerolog.Nop()
		return closer, nil
	}

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return closer, nil
}

// Component creates a logger tagged with a component identifier under
// the "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
