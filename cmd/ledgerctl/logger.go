// logger.go - Structured logging for the ledger client
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a zerolog logger writing human-readable output to stderr and,
// when logFile is set, JSON lines to the file as well. Result output on stdout is
// never mixed with log output.
func NewLogger(level string, logFile string) (zerolog.Logger, error) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	case "fatal":
		logLevel = zerolog.FatalLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	var sink io.Writer = consoleWriter
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to open log file: %w", err)
		}
		sink = zerolog.MultiLevelWriter(consoleWriter, file)
	}

	logger := zerolog.New(sink).
		Level(logLevel).
		With().
		Timestamp().
		Logger()
	return logger, nil
}
