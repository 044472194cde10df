package tools

import (
	"context"

	"github.com/sipeed/toolwire/pkg/envelope"
	"github.com/sipeed/toolwire/pkg/media"
)

// Tool is a capability the agent can invoke.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, args map[string]interface{}) *ToolResult
}

// ToolResult captures the outcome of a tool invocation.
// ForLLM goes back into the conversation (wrapped in an envelope);
// ForUser is surfaced directly to the user when not Silent.
type ToolResult struct {
	ForLLM  string
	ForUser string
	Media   []media.ContentPart // image payloads attached to the result
	Silent  bool
	IsError bool
	Err     error
}

// ErrorResult builds a failed result with the given message for the LLM.
func ErrorResult(msg string) *ToolResult {
	return &ToolResult{ForLLM: msg, IsError: true}
}

// SilentResult builds a successful result that is not shown to the user.
func SilentResult(msg string) *ToolResult {
	return &ToolResult{ForLLM: msg, Silent: true}
}

// SuccessResult builds a plain successful result.
func SuccessResult(msg string) *ToolResult {
	return &ToolResult{ForLLM: msg}
}

// Status maps the execution outcome onto the envelope status enum.
// Rejection and feedback statuses are decided upstream by approval flow,
// never by the tool itself.
func (r *ToolResult) Status() envelope.Status {
	if r.IsError {
		return envelope.StatusError
	}
	return envelope.StatusSuccess
}

// HasImages reports whether any attached media part is an image.
func (r *ToolResult) HasImages() bool {
	for _, p := range r.Media {
		if p.IsImage() {
			return true
		}
	}
	return false
}
