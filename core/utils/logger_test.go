package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerJSONFormatFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLoggerWith(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	l.Printf("hidden %d", 1)
	l.With("request_id", "abc").Errorf("boom %s", "now")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["message"] != "boom now" || entry["request_id"] != "abc" || entry["level"] != "error" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLoggerWith(&bytes.Buffer{}, "loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Printf("x")
	l.Errorf("x")
	if l.With("a", "b") != nil {
		t.Fatalf("expected nil child")
	}
}
