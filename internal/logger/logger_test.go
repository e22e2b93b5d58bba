package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewZapLevels(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		logger, err := NewZap(in)
		if err != nil {
			t.Fatalf("NewZap(%q): %v", in, err)
		}
		if !logger.Core().Enabled(want) {
			t.Errorf("NewZap(%q): level %v disabled", in, want)
		}
		if want > zapcore.DebugLevel && logger.Core().Enabled(want-1) {
			t.Errorf("NewZap(%q): level %v unexpectedly enabled", in, want-1)
		}
	}
}

func TestNewZerologFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "warn")

	log.Info().Msg("quiet")
	log.Warn().Str("table", "events").Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "events") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestNewZerologUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "chatty")

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}
