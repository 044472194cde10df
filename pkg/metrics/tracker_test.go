package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTracker_Record(t *testing.T) {
	workspace := t.TempDir()
	tracker := NewTracker(workspace)

	tracker.Record(ParseEvent{Op: "parse", Tool: "read_file", Status: "success", OK: true})
	tracker.Record(ParseEvent{Op: "parse", Error: "missing tag: <toolName> not found"})

	data, err := os.ReadFile(filepath.Join(workspace, "metrics", "envelopes.jsonl"))
	if err != nil {
		t.Fatalf("Expected JSONL file, got: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(lines))
	}

	var first ParseEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Expected valid JSON line, got: %v", err)
	}
	if first.Tool != "read_file" || !first.OK {
		t.Errorf("Unexpected first event: %+v", first)
	}
	if first.Timestamp == "" {
		t.Error("Expected timestamp filled in")
	}

	var second ParseEvent
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("Expected valid JSON line, got: %v", err)
	}
	if second.OK {
		t.Error("Expected failed event")
	}
}

func TestTracker_NilSafe(t *testing.T) {
	var tracker *Tracker
	// Must not panic: metrics are optional everywhere.
	tracker.Record(ParseEvent{Op: "parse"})
}
