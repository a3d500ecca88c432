package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"INFO", "info"},
		{" Warn ", "warn"},
		{"ERROR", "error"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMultiLoggerFanOut(t *testing.T) {
	var a, b bytes.Buffer
	ml := NewMultiLogger(NewConsoleLogger(&a, "debug"), NewConsoleLogger(&b, "debug"))

	ml.Debug("d")
	ml.Info("i")
	ml.Warn("w")
	ml.Error("e")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		for _, msg := range []string{"d", "i", "w", "e"} {
			if !strings.Contains(buf.String(), msg) {
				t.Errorf("%s logger missing message %q", name, msg)
			}
		}
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	ml := NewMultiLogger(nil, NewConsoleLogger(&buf, "info"), nil)

	// Must not panic on nil entries
	ml.Info("ok")

	if !strings.Contains(buf.String(), "ok") {
		t.Errorf("expected message in surviving logger, got %q", buf.String())
	}
}

func TestNoOpLogger(t *testing.T) {
	n := NewNoOpLogger()

	// All methods are safe no-ops
	n.Debug("a")
	n.Info("b")
	n.Warn("c")
	n.Error("d")
}
