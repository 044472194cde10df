package tools

import (
	"fmt"
	"regexp"
)

// DefaultMaxResultBytes caps tool output embedded in an envelope. 64 KB keeps
// most useful output intact while stopping huge responses from bloating the
// conversation.
const DefaultMaxResultBytes = 65536

var (
	// dataURLRe matches inline base64 data URIs of meaningful size.
	dataURLRe = regexp.MustCompile(`data:[a-zA-Z0-9+/=\-]+;base64,[A-Za-z0-9+/=]{64,}`)

	// hexBlobRe matches contiguous hex runs of 256+ characters.
	hexBlobRe = regexp.MustCompile(`[0-9a-fA-F]{256,}`)
)

// TruncateResult shrinks oversized tool output to fit maxBytes before it is
// wrapped in an envelope. Inline base64 data URIs go first, then large hex
// blobs; if the output is still too big, the middle is cut and replaced with
// a byte-count marker. Content already within the limit is returned unchanged.
func TruncateResult(content string, maxBytes int) string {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResultBytes
	}
	if len(content) <= maxBytes {
		return content
	}

	content = dataURLRe.ReplaceAllStringFunc(content, func(m string) string {
		return fmt.Sprintf("[base64 data removed, %d bytes]", len(m))
	})
	if len(content) <= maxBytes {
		return content
	}

	content = hexBlobRe.ReplaceAllStringFunc(content, func(m string) string {
		return fmt.Sprintf("[hex data removed, %d bytes]", len(m))
	})
	if len(content) <= maxBytes {
		return content
	}

	headLen := maxBytes * 2 / 5
	tailLen := maxBytes * 2 / 5
	if headLen+tailLen >= len(content) {
		return content
	}

	removed := len(content) - headLen - tailLen
	return content[:headLen] +
		fmt.Sprintf("\n\n[... %d bytes truncated ...]\n\n", removed) +
		content[len(content)-tailLen:]
}
