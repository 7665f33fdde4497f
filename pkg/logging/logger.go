package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog handler on stdout as the default logger.
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
