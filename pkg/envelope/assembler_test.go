package envelope

import (
	"errors"
	"testing"
)

func TestAssembler_SplitDeltas(t *testing.T) {
	var got []string
	a := NewAssembler(func(raw string) {
		got = append(got, raw)
	})

	a.Append("<toolResponse><toolName>a</toolName>")
	if len(got) != 0 {
		t.Fatal("Envelope reported before its close arrived")
	}

	a.Append("<toolStatus>success</toolStatus><toolResult>r</toolResult></tool")
	if len(got) != 0 {
		t.Fatal("Envelope reported on a partial close tag")
	}

	a.Append("Response>")
	if len(got) != 1 {
		t.Fatalf("Expected 1 envelope, got %d", len(got))
	}

	resp, err := Parse(got[0])
	if err != nil {
		t.Fatalf("Reported envelope should parse, got: %v", err)
	}
	if resp.ToolName != "a" || resp.ToolResult != "r" {
		t.Errorf("Unexpected fields: %+v", resp)
	}
}

func TestAssembler_KeepsSurroundingText(t *testing.T) {
	var count int
	a := NewAssembler(func(string) { count++ })

	a.Append("thinking... <toolResponse><toolName>x</toolName><toolStatus>success</toolStatus><toolResult>ok</toolResult></toolResponse> and more")
	if count != 1 {
		t.Fatalf("Expected 1 envelope, got %d", count)
	}
	if a.Remainder() != "thinking...  and more" {
		t.Errorf("Unexpected remainder: '%s'", a.Remainder())
	}
}

func TestAssembler_NestedEchoReportedOnce(t *testing.T) {
	var got []string
	a := NewAssembler(func(raw string) { got = append(got, raw) })

	a.Append("<toolResponse><toolName>e</toolName><toolStatus>success</toolStatus><toolResult><toolResponse>echo</toolResponse></toolResult></toolResponse>")
	if len(got) != 1 {
		t.Fatalf("Expected exactly 1 envelope for nested echo, got %d", len(got))
	}
}

func TestAssembler_FlushUnclosed(t *testing.T) {
	a := NewAssembler(func(string) {})
	a.Append("<toolResponse><toolName>x</toolName>")

	rest, err := a.Flush()
	if !errors.Is(err, ErrMalformedTag) {
		t.Errorf("Expected ErrMalformedTag for truncated envelope, got: %v", err)
	}
	if rest == "" {
		t.Error("Expected flushed text to be returned")
	}
	if a.Remainder() != "" {
		t.Error("Expected empty buffer after flush")
	}
}

func TestAssembler_FlushPlainText(t *testing.T) {
	a := NewAssembler(func(string) {})
	a.Append("no envelopes at all")

	rest, err := a.Flush()
	if err != nil {
		t.Errorf("Expected no error for plain text, got: %v", err)
	}
	if rest != "no envelopes at all" {
		t.Errorf("Unexpected flushed text: '%s'", rest)
	}
}
