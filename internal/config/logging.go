package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger creates a logger that writes text lines to stdout and appends
// the same lines to logFile. Returns the logger and a cleanup function to
// close the file.
func SetupLogger(logFile string, level slog.Level) (*slog.Logger, func() error) {
	stdoutHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	file, err := openLogFile(logFile)
	if err != nil {
		// Fall back to stdout-only if the file cannot be opened
		logger := slog.New(stdoutHandler)
		logger.Error("failed to open log file, using stdout only", "error", err, "file", logFile)
		return logger, func() error { return nil }
	}

	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	logger := slog.New(slogmulti.Fanout(stdoutHandler, fileHandler))

	return logger, file.Close
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stdout, file io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level}),
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}),
	))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
