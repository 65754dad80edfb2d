package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWriterEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info").With("component", "otp")

	log.Debug("hidden")
	log.Info("code issued", "purpose", "registration")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single info line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "code issued" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["component"] != "otp" || entry["purpose"] != "registration" {
		t.Fatalf("missing fields in %v", entry)
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if lvl := parseLevel("nonsense", "production"); lvl.String() != "info" {
		t.Fatalf("expected info, got %s", lvl.String())
	}
	if lvl := parseLevel("", "development"); lvl.String() != "debug" {
		t.Fatalf("expected debug in development, got %s", lvl.String())
	}
}
