package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ParseEvent records the outcome of one envelope parse or format operation.
type ParseEvent struct {
	Timestamp  string `json:"ts"`
	Op         string `json:"op"` // "parse", "format" or "sniff"
	Tool       string `json:"tool,omitempty"`
	Status     string `json:"status,omitempty"`
	HasImages  bool   `json:"has_images,omitempty"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	DurationUS int64  `json:"dur_us"`
}

// Tracker appends envelope events to a JSONL file. Failures to write are
// dropped silently; metrics never block the envelope path.
type Tracker struct {
	filePath string
	mu       sync.Mutex
}

// NewTracker creates a tracker that writes to workspace/metrics/envelopes.jsonl.
func NewTracker(workspace string) *Tracker {
	dir := filepath.Join(workspace, "metrics")
	os.MkdirAll(dir, 0755)
	return &Tracker{
		filePath: filepath.Join(dir, "envelopes.jsonl"),
	}
}

// Record appends an event to the JSONL file.
func (t *Tracker) Record(event ParseEvent) {
	if t == nil {
		return
	}
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	f.Write(data)
	f.Write([]byte("\n"))
}
