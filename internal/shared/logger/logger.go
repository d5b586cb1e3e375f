package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// level is shared by every handler Setup installs so LOG_LEVEL can be applied after config load.
var level = new(slog.LevelVar)

// Setup configures the global slog logger based on environment
func Setup(env string) {
	slog.SetDefault(New(os.Stdout, env))
	slog.Info("Logger 초기화", "env", env, "level", level.Level().String())
}

// New builds a logger for env writing to w.
// production: JSON, info / local, dev: text, debug / test: text, warn
func New(w io.Writer, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	switch env {
	case "production", "prod":
		level.Set(slog.LevelInfo)
		return slog.New(slog.NewJSONHandler(w, opts))
	case "local", "dev", "development":
		level.Set(slog.LevelDebug)
	case "test":
		level.Set(slog.LevelWarn)
	default:
		level.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetLevel overrides the env default. An empty name keeps the current level.
func SetLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("알 수 없는 로그 레벨 %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// Level reports the level currently in effect.
func Level() slog.Level {
	return level.Level()
}
