package envelope

import (
	"errors"
	"strings"
	"sync"
)

const responseTag = "toolResponse"

// Assembler accumulates streamed text deltas and fires a callback each time
// a complete, balanced <toolResponse> envelope materializes in the stream.
// Detection reuses the same depth-counted scan as ExtractTag, so an envelope
// whose result body echoes <toolResponse> tags is only reported once its
// outer close arrives.
type Assembler struct {
	mu         sync.Mutex
	buf        strings.Builder
	onEnvelope func(raw string)
}

// NewAssembler creates an assembler that calls onEnvelope with the raw
// envelope text (tags included) for every completed envelope.
func NewAssembler(onEnvelope func(raw string)) *Assembler {
	return &Assembler{onEnvelope: onEnvelope}
}

// Append adds a text delta to the accumulator and reports any envelopes the
// delta completed. Text preceding or following an envelope is kept; only
// reported envelopes are consumed from the buffer.
func (a *Assembler) Append(delta string) {
	a.mu.Lock()
	a.buf.WriteString(delta)
	pending := a.buf.String()

	var done []string
	for {
		bodyStart, bodyEnd, err := tagBounds(pending, responseTag)
		if err != nil {
			// Missing or not yet closed — wait for more deltas.
			break
		}
		rawStart := bodyStart - len("<"+responseTag+">")
		rawEnd := bodyEnd + len("</"+responseTag+">")
		done = append(done, pending[rawStart:rawEnd])
		pending = pending[:rawStart] + pending[rawEnd:]
	}

	if len(done) > 0 {
		a.buf.Reset()
		a.buf.WriteString(pending)
	}
	a.mu.Unlock()

	// Callback outside the lock: consumers may call back into the assembler.
	for _, raw := range done {
		a.onEnvelope(raw)
	}
}

// Remainder returns buffered text that does not (yet) form a complete
// envelope. An unclosed opening tag shows up here until its close arrives.
func (a *Assembler) Remainder() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buf.String()
}

// Flush discards the buffer and returns what was in it. Call after the
// stream ends to recover trailing plain text or detect a truncated envelope.
func (a *Assembler) Flush() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rest := a.buf.String()
	a.buf.Reset()

	if _, _, err := tagBounds(rest, responseTag); errors.Is(err, ErrMalformedTag) {
		return rest, err
	}
	return rest, nil
}
