package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

//nolint:paralleltest
func TestGetLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: "info", Format: "text"}) })

	GetLogger("store.session").Debug("login succeeded", "user", "alice")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["logger"] != "store.session" {
		t.Errorf("logger = %v, want store.session", entry["logger"])
	}
	if entry["msg"] != "login succeeded" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

//nolint:paralleltest
func TestGetLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Format: "text", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: "info", Format: "text"}) })

	logger := GetLogger("client")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
