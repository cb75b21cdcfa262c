// Package logging provides slog-based loggers for the verde services.
// Each service gets its own JSON file logger with lumberjack rotation;
// the default process logger writes JSON to stdout.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/verdelabs/verde-go/internal/conf"
	"gopkg.in/natefinch/lumberjack.v2"
)

var defaultLogger *slog.Logger

// Init configures the process-wide default logger. Safe to call once at
// startup; service packages create their own file loggers independently.
func Init(level slog.Leveler) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Default returns the process-wide logger, or the slog default when Init
// has not been called.
func Default() *slog.Logger {
	if defaultLogger == nil {
		return slog.Default()
	}
	return defaultLogger
}

// ForService returns the default logger with a service attribute attached.
func ForService(serviceName string) *slog.Logger {
	return Default().With("service", serviceName)
}

// NewFileLogger creates a JSON slog.Logger writing to filePath with
// lumberjack rotation, tagging every record with the service name.
// It returns the logger, a closer for the underlying writer, and an
// error if the log directory cannot be created.
func NewFileLogger(filePath, serviceName string, level slog.Leveler) (*slog.Logger, func() error, error) {
	logDir := filepath.Dir(filePath)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	// Rotation defaults, overridden by config when loaded
	maxSizeMB := 100
	maxBackups := 3
	maxAge := 28 // days

	if settings := conf.GetSettings(); settings != nil {
		if settings.Log.MaxSizeMB > 0 {
			maxSizeMB = settings.Log.MaxSizeMB
		}
		if settings.Log.MaxBackups > 0 {
			maxBackups = settings.Log.MaxBackups
		}
		if settings.Log.MaxAgeDays > 0 {
			maxAge = settings.Log.MaxAgeDays
		}
	}

	logWriter := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   false,
	}

	fileHandler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: level})
	logger := slog.New(fileHandler).With("service", serviceName)

	closeFunc := func() error {
		return logWriter.Close()
	}

	return logger, closeFunc, nil
}
