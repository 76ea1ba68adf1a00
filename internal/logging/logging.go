// README: slog set-up; writes to stdout or to a rotated log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"skyplan/internal/config"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Init builds the process logger and installs it as the slog default.
// An empty cfg.File logs to stdout.
func Init(cfg config.LogConfig) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var out io.Writer = os.Stdout
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			logger := slog.New(newHandler(cfg.Format, os.Stdout, opts))
			slog.SetDefault(logger)
			return logger, err
		}
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		}
	}

	logger := slog.New(newHandler(cfg.Format, out, opts))
	slog.SetDefault(logger)
	return logger, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
