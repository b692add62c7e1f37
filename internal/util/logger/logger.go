package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	loggerInstance *slog.Logger
	once           sync.Once
)

// GetLogger returns the process-wide structured logger. LOG_FORMAT=json
// switches to JSON output, LOG_LEVEL=debug enables debug records.
func GetLogger() *slog.Logger {
	once.Do(func() {
		options := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

		var handler slog.Handler
		if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
			handler = slog.NewJSONHandler(os.Stdout, options)
		} else {
			handler = slog.NewTextHandler(os.Stdout, options)
		}

		loggerInstance = slog.New(handler)
	})

	return loggerInstance
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
