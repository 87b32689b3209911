package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Level: DEBUG, Service: "shiftboard"})

	log.Info("month lock updated", "month_start", "2026-02-01")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "shiftboard" {
		t.Errorf("service attribute = %v, want shiftboard", entry[SERVICE])
	}
	if entry["month_start"] != "2026-02-01" {
		t.Errorf("month_start attribute = %v", entry["month_start"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Level: WARN, Format: "text"})

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn message should be written")
	}
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf}).With("component", "guard")

	log.Info("decision")
	if !strings.Contains(buf.String(), `"component":"guard"`) {
		t.Errorf("expected component attribute, got %s", buf.String())
	}
}
