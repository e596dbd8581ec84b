package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Logger for debug messages
var (
	logger  = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFile *os.File
)

// DefaultLogPath returns the log file used when the config does not name one
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("todomvc_%s.log", time.Now().Format("2006-01-02")))
}

// Log writes a debug record with key/value attributes if verbose mode is enabled
func Log(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Logger returns the current logger
func Logger() *slog.Logger {
	return logger
}

// InitLogger initializes the logging system. Without verbose everything is
// discarded; with verbose a JSON log is appended to path.
func InitLogger(verbose bool, path string) error {
	CloseLogger()

	if !verbose {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Log("verbose logging enabled", "log_file", path)
	return nil
}

// SetOutput routes debug logging to w. Tests use it to capture records.
func SetOutput(w io.Writer) {
	CloseLogger()
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
