package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sipeed/toolwire/pkg/envelope"
	"github.com/sipeed/toolwire/pkg/media"
	"github.com/sipeed/toolwire/pkg/providers"
	"github.com/sipeed/toolwire/pkg/tools"
)

// fakeTool returns a canned result for testing the responder seam.
type fakeTool struct {
	name   string
	result *tools.ToolResult
}

func (f *fakeTool) Name() string                       { return f.name }
func (f *fakeTool) Description() string                { return "test tool" }
func (f *fakeTool) Parameters() map[string]interface{} { return map[string]interface{}{} }
func (f *fakeTool) Execute(ctx context.Context, args map[string]interface{}) *tools.ToolResult {
	return f.result
}

func newTestResponder(t *testing.T, result *tools.ToolResult) *Responder {
	t.Helper()
	registry := tools.NewToolRegistry()
	registry.Register(&fakeTool{name: "probe", result: result})
	return NewResponder(registry)
}

func TestResponder_FormatAndRecover(t *testing.T) {
	r := newTestResponder(t, nil)

	text := r.FormatResult("probe", tools.SuccessResult("all good"))
	resp, err := r.Recover(text)
	if err != nil {
		t.Fatalf("Expected round trip to parse, got: %v", err)
	}
	if resp.ToolName != "probe" || resp.ToolStatus != "success" || resp.ToolResult != "all good" {
		t.Errorf("Unexpected fields: %+v", resp)
	}
}

func TestResponder_FormatError(t *testing.T) {
	r := newTestResponder(t, nil)

	result := &tools.ToolResult{IsError: true, Err: errors.New("disk on fire")}
	text := r.FormatResult("probe", result)

	resp, err := r.Recover(text)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ToolStatus != "error" {
		t.Errorf("Expected status 'error', got '%s'", resp.ToolStatus)
	}
	if resp.ToolResult != "disk on fire" {
		t.Errorf("Expected Err message used when ForLLM empty, got '%s'", resp.ToolResult)
	}
}

func TestResponder_FormatTruncatesOversizedOutput(t *testing.T) {
	r := newTestResponder(t, nil)
	r.SetMaxResultBytes(200)

	text := r.FormatResult("probe", tools.SuccessResult(strings.Repeat("z", 5000)))
	resp, err := r.Recover(text)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(resp.ToolResult, "bytes truncated") {
		t.Error("Expected truncation marker in result")
	}
	if len(resp.ToolResult) > 400 {
		t.Errorf("Expected truncated result, got %d bytes", len(resp.ToolResult))
	}
}

func TestResponder_Run(t *testing.T) {
	result := &tools.ToolResult{
		ForLLM: "captured screen",
		Media:  []media.ContentPart{{Type: "image", Data: "AAAA", MediaType: "image/png"}},
	}
	r := newTestResponder(t, result)

	msg := r.Run(context.Background(), providers.ToolCall{ID: "call_1", Name: "probe"})

	if msg.Role != "tool" {
		t.Errorf("Expected tool role, got '%s'", msg.Role)
	}
	if msg.ToolCallID != "call_1" {
		t.Errorf("Expected call ID preserved, got '%s'", msg.ToolCallID)
	}
	if len(msg.ContentParts) != 1 {
		t.Fatalf("Expected image attached, got %d parts", len(msg.ContentParts))
	}

	resp, err := envelope.Parse(msg.Content)
	if err != nil {
		t.Fatalf("Expected envelope content, got: %v", err)
	}
	if !resp.HasImages {
		t.Error("Expected hasImages=true for a result with image media")
	}
}

func TestResponder_RunAssignsCallID(t *testing.T) {
	r := newTestResponder(t, tools.SuccessResult("ok"))

	msg := r.Run(context.Background(), providers.ToolCall{Name: "probe"})
	if msg.ToolCallID == "" {
		t.Error("Expected a generated call ID")
	}
}

func TestResponder_RunUnknownTool(t *testing.T) {
	r := newTestResponder(t, tools.SuccessResult("ok"))

	msg := r.Run(context.Background(), providers.ToolCall{ID: "c", Name: "ghost"})
	resp, err := envelope.Parse(msg.Content)
	if err != nil {
		t.Fatalf("Expected envelope even for unknown tool, got: %v", err)
	}
	if resp.ToolStatus != "error" {
		t.Errorf("Expected error status, got '%s'", resp.ToolStatus)
	}
}

func TestResponder_FormatRejected(t *testing.T) {
	r := newTestResponder(t, nil)

	resp, err := r.Recover(r.FormatRejected("probe", ""))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ToolStatus != "rejected" {
		t.Errorf("Expected 'rejected', got '%s'", resp.ToolStatus)
	}
	if !strings.Contains(resp.ToolResult, "denied") {
		t.Errorf("Expected default denial message, got '%s'", resp.ToolResult)
	}

	resp, err = r.Recover(r.FormatFeedback("probe", "try a smaller range"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ToolStatus != "feedback" || resp.ToolResult != "try a smaller range" {
		t.Errorf("Unexpected feedback fields: %+v", resp)
	}
}

func TestResponder_RecoverFailure(t *testing.T) {
	r := newTestResponder(t, nil)

	_, err := r.Recover("<toolResponse><toolName>x</toolName>")
	if !errors.Is(err, envelope.ErrMalformedTag) {
		t.Errorf("Expected ErrMalformedTag, got: %v", err)
	}
}
