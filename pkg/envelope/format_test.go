package envelope

import (
	"strings"
	"testing"
)

func TestFormat_RoundTrip(t *testing.T) {
	text := Format("read_file", StatusSuccess, "file contents", false)

	resp, err := Parse(text)
	if err != nil {
		t.Fatalf("Expected formatted envelope to parse, got: %v", err)
	}
	if resp.ToolName != "read_file" {
		t.Errorf("Expected toolName 'read_file', got '%s'", resp.ToolName)
	}
	if resp.ToolStatus != "success" {
		t.Errorf("Expected toolStatus 'success', got '%s'", resp.ToolStatus)
	}
	if resp.ToolResult != "file contents" {
		t.Errorf("Expected toolResult 'file contents', got '%s'", resp.ToolResult)
	}
	if resp.HasImages {
		t.Error("Expected hasImages=false")
	}
}

func TestFormat_WithImages(t *testing.T) {
	text := Format("screenshot", StatusSuccess, "captured", true)

	if !strings.Contains(text, ImagesAttachedMarker) {
		t.Error("Expected envelope to contain the images marker")
	}

	resp, err := Parse(text)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !resp.HasImages {
		t.Error("Expected hasImages=true")
	}
}

func TestFormat_Layout(t *testing.T) {
	text := Format("exec", StatusError, "exit 1", false)
	expected := "<toolResponse>\n<toolName>exec</toolName>\n<toolStatus>error</toolStatus>\n<toolResult>exit 1</toolResult>\n</toolResponse>"
	if text != expected {
		t.Errorf("Unexpected layout:\n%s", text)
	}
}

func TestStatusText(t *testing.T) {
	cases := []struct {
		status   Status
		expected string
	}{
		{StatusRejected, "The Tool exec returned the following rejection message:"},
		{StatusError, "The Tool exec returned the following error:"},
		{StatusFeedback, "The Tool exec returned the following feedback:"},
		{StatusSuccess, "The Tool exec returned the following result:"},
		{Status("bogus"), "The Tool exec returned the following result:"},
	}

	for _, c := range cases {
		if got := StatusText("exec", c.status); got != c.expected {
			t.Errorf("StatusText(%q): expected '%s', got '%s'", c.status, c.expected, got)
		}
	}
}
