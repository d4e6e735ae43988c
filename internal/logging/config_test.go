package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"off":     zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		if !ok || got != want {
			t.Fatalf("parse %q: got %v ok=%v want %v", raw, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level rejected")
	}
	if _, ok := ParseLevel(""); ok {
		t.Fatalf("expected empty level ignored")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogBypass, "true")
	t.Setenv(EnvLogTimestamp, "nope")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("unexpected level: %v", cfg.Level)
	}
	if !cfg.Bypass {
		t.Fatalf("expected bypass enabled")
	}
	if !cfg.Timestamp {
		t.Fatalf("expected invalid timestamp override ignored")
	}
}

func TestNewBypassWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, Bypass: true, Out: &buf})
	logger.Debug().Msg("hidden")
	logger.Info().Str("channel", "room").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"channel":"room"`) {
		t.Fatalf("expected structured field in output: %s", out)
	}
}
