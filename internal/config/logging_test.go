package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := &Settings{LogLevel: tt.in}
			if got := s.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sjt.log")
	s := &Settings{LogFile: path, LogLevel: "warn"}

	logger, closer, err := s.FileLogger()
	if err != nil {
		t.Fatalf("FileLogger() error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown k=v") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestFileLogger_EmptyDiscards(t *testing.T) {
	logger, closer, err := (&Settings{}).FileLogger()
	if err != nil || logger == nil || closer == nil {
		t.Fatalf("FileLogger() = %v, %v, %v", logger, closer, err)
	}
	logger.Error("dropped")
	closer.Close()
}
