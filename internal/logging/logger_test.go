// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp should default to true")
	}
	if cfg.Output == nil {
		t.Error("Output should default to stderr")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"off", zerolog.Disabled},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Init mutates global state, so these tests do not run in parallel.
func TestInit_JSONOutput(t *testing.T) {
	previous := Logger()
	defer SetLogger(previous)

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("quote_id", "q1").Msg("quote served")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"quote_id":"q1"`, `"message":"quote served"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	previous := Logger()
	defer SetLogger(previous)

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("hidden-debug")
	Info().Msg("hidden-info")
	Warn().Msg("shown-warn")
	Error().Msg("shown-error")

	out := buf.String()
	if strings.Contains(out, "hidden-") {
		t.Errorf("entries below warn leaked: %s", out)
	}
	if !strings.Contains(out, "shown-warn") || !strings.Contains(out, "shown-error") {
		t.Errorf("expected warn and error entries: %s", out)
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	previous := Logger()
	defer SetLogger(previous)

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("console line")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console format produced JSON: %s", out)
	}
	if !strings.Contains(out, "console line") {
		t.Errorf("missing message: %s", out)
	}
}

func TestNewTestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Warn().Str("k", "v").Msg("captured")

	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("captured output = %s", buf.String())
	}
}
