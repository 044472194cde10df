package envelope

import (
	"fmt"
	"strings"
)

// ImagesAttachedMarker is the literal note the formatter appends to an
// envelope when the tool result carries image payloads. Presence of this
// marker (not a tag) is what drives ToolResponse.HasImages.
const ImagesAttachedMarker = "check the images attached to the request"

// ToolResponse holds the structured fields recovered from an envelope.
type ToolResponse struct {
	ToolName   string
	ToolStatus string
	ToolResult string
	HasImages  bool
}

// Parse recovers the four envelope fields from text. Each field is extracted
// independently against the full text: the envelope format never nests
// toolName/toolStatus/toolResult inside each other, only toolResult content
// may echo tag-like text, which ExtractTag handles by depth counting.
//
// Parsing is all-or-nothing: if any required field is missing or unclosed,
// the whole parse fails and no partial result is returned. ToolStatus is
// returned as-is, not validated against the status enum.
func Parse(text string) (*ToolResponse, error) {
	body, err := ExtractTag(text, "toolResponse")
	if err != nil {
		return nil, fmt.Errorf("parsing tool response: %w", err)
	}

	name, err := ExtractTag(text, "toolName")
	if err != nil {
		return nil, fmt.Errorf("parsing tool name: %w", err)
	}

	status, err := ExtractTag(text, "toolStatus")
	if err != nil {
		return nil, fmt.Errorf("parsing tool status: %w", err)
	}

	result, err := ExtractTag(text, "toolResult")
	if err != nil {
		return nil, fmt.Errorf("parsing tool result: %w", err)
	}

	return &ToolResponse{
		ToolName:   name,
		ToolStatus: status,
		ToolResult: result,
		HasImages:  strings.Contains(body, ImagesAttachedMarker),
	}, nil
}
