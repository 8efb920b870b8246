package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"quiet":   LevelQuiet,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWriterLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelWarn, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden %d", 2)
	log.Warn("visible %d", 3)
	log.WithComponent("filesrv").Error("API request failed: %s", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("unexpected low-level output: %q", out)
	}
	if !strings.Contains(out, "visible 3") {
		t.Fatalf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "[filesrv] ") || !strings.Contains(out, "boom") {
		t.Fatalf("missing component error line: %q", out)
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(*NoopLogger); !ok {
		t.Fatalf("expected no-op logger for nil input")
	}
	w := NewWriter(LevelInfo, &bytes.Buffer{})
	if OrNoop(w) != Logger(w) {
		t.Fatalf("expected passthrough")
	}
}
