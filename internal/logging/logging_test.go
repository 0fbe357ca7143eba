package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{" info ", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "k", 20)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=20") {
		t.Errorf("warn line missing: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("non-terminal output should not be colorized: %q", out)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "debug")
	if !FromEnv().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled")
	}

	t.Setenv(LevelEnv, "error")
	if FromEnv().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be disabled at error level")
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not enable any level")
	}
}
