package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logFunc   func(*ConsoleLogger, string)
		message   string
		wantShown bool
	}{
		{"debug shown at debug level", "debug", (*ConsoleLogger).Debug, "dbg", true},
		{"debug hidden at info level", "info", (*ConsoleLogger).Debug, "dbg", false},
		{"info shown at info level", "info", (*ConsoleLogger).Info, "inf", true},
		{"info hidden at warn level", "warn", (*ConsoleLogger).Info, "inf", false},
		{"warn shown at warn level", "warn", (*ConsoleLogger).Warn, "wrn", true},
		{"error shown at error level", "error", (*ConsoleLogger).Error, "err", true},
		{"warn hidden at error level", "error", (*ConsoleLogger).Warn, "wrn", false},
		{"invalid level defaults to info", "bogus", (*ConsoleLogger).Debug, "dbg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.logLevel)
			tt.logFunc(cl, tt.message)

			got := buf.String()
			if tt.wantShown && !strings.Contains(got, tt.message) {
				t.Errorf("expected message %q in output, got %q", tt.message, got)
			}
			if !tt.wantShown && got != "" {
				t.Errorf("expected no output, got %q", got)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.Info("hello")

	got := buf.String()
	if !strings.Contains(got, "[INFO] hello") {
		t.Errorf("expected level tag and message, got %q", got)
	}
	if !strings.HasPrefix(got, "[") {
		t.Errorf("expected timestamp prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("expected trailing newline, got %q", got)
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "debug")

	// Must not panic
	cl.Debug("a")
	cl.Info("b")
	cl.Warn("c")
	cl.Error("d")
}

func TestConsoleLoggerNoColorForBuffer(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	if cl.colorOutput {
		t.Error("expected color output disabled for non-terminal writer")
	}

	cl.Error("plain")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escapes, got %q", buf.String())
	}
}
