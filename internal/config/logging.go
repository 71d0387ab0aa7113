package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (s *Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// FileLogger opens LogFile for appending and returns a text logger writing
// to it, with the file to close. An empty LogFile discards everything.
func (s *Settings) FileLogger() (*slog.Logger, io.Closer, error) {
	if s.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: s.SlogLevel()})), f, nil
}
