package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sipeed/toolwire/pkg/envelope"
	"github.com/sipeed/toolwire/pkg/logger"
	"github.com/sipeed/toolwire/pkg/metrics"
	"github.com/sipeed/toolwire/pkg/providers"
	"github.com/sipeed/toolwire/pkg/tools"
)

// Responder is the seam between tool execution and the conversation: it wraps
// tool outcomes in envelopes, recovers structured fields from envelope text,
// and builds the provider messages that carry results (and their images)
// back to the model.
type Responder struct {
	registry       *tools.ToolRegistry
	tracker        *metrics.Tracker // nil disables metrics
	maxResultBytes int
}

func NewResponder(registry *tools.ToolRegistry) *Responder {
	return &Responder{
		registry:       registry,
		maxResultBytes: tools.DefaultMaxResultBytes,
	}
}

// SetTracker enables JSONL event recording.
func (r *Responder) SetTracker(tracker *metrics.Tracker) {
	r.tracker = tracker
}

// SetMaxResultBytes overrides the truncation threshold for tool output.
func (r *Responder) SetMaxResultBytes(n int) {
	if n > 0 {
		r.maxResultBytes = n
	}
}

// FormatResult wraps a tool outcome in an envelope. Oversized output is
// truncated first so a single result cannot flood the conversation.
func (r *Responder) FormatResult(name string, result *tools.ToolResult) string {
	message := result.ForLLM
	if message == "" && result.Err != nil {
		message = result.Err.Error()
	}
	message = tools.TruncateResult(message, r.maxResultBytes)

	text := envelope.Format(name, result.Status(), message, result.HasImages())
	r.record("format", name, string(result.Status()), result.HasImages(), nil, 0)
	return text
}

// FormatRejected wraps a user rejection of a tool call, with optional feedback.
func (r *Responder) FormatRejected(name, feedback string) string {
	if feedback == "" {
		feedback = "The user denied this operation."
	}
	return envelope.Format(name, envelope.StatusRejected, feedback, false)
}

// FormatFeedback wraps user feedback on a completed tool call.
func (r *Responder) FormatFeedback(name, feedback string) string {
	return envelope.Format(name, envelope.StatusFeedback, feedback, false)
}

// Run executes a requested tool call and returns the tool-role message that
// carries its envelope, with any image parts attached. Calls replayed without
// an ID get a fresh one so providers can correlate request and result.
func (r *Responder) Run(ctx context.Context, call providers.ToolCall) providers.Message {
	callID := call.ID
	if callID == "" {
		callID = uuid.NewString()
	}

	start := time.Now()
	result := r.registry.Execute(ctx, call.Name, call.Arguments)

	logger.InfoCF("responder", fmt.Sprintf("Tool %s finished", call.Name),
		map[string]interface{}{
			"tool":     call.Name,
			"status":   string(result.Status()),
			"images":   len(result.Media),
			"duration": time.Since(start).String(),
		})

	msg := providers.Message{
		Role:       "tool",
		Content:    r.FormatResult(call.Name, result),
		ToolCallID: callID,
	}
	if result.HasImages() {
		msg.ContentParts = result.Media
	}
	return msg
}

// Recover parses envelope text back into structured fields. All-or-nothing:
// a missing or unclosed field fails the whole parse.
func (r *Responder) Recover(text string) (*envelope.ToolResponse, error) {
	start := time.Now()
	resp, err := envelope.Parse(text)
	if err != nil {
		r.record("parse", "", "", false, err, time.Since(start))
		logger.DebugCF("responder", "Envelope parse failed",
			map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	r.record("parse", resp.ToolName, resp.ToolStatus, resp.HasImages, nil, time.Since(start))
	return resp, nil
}

func (r *Responder) record(op, tool, status string, hasImages bool, err error, dur time.Duration) {
	if r.tracker == nil {
		return
	}
	event := metrics.ParseEvent{
		Op:         op,
		Tool:       tool,
		Status:     status,
		HasImages:  hasImages,
		OK:         err == nil,
		DurationUS: dur.Microseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	r.tracker.Record(event)
}
