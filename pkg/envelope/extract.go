package envelope

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingTag is returned when the opening tag never appears in the text.
	ErrMissingTag = errors.New("missing tag")
	// ErrMalformedTag is returned when an opening tag has no matching close.
	ErrMalformedTag = errors.New("malformed tag")
)

// ExtractTag returns the trimmed text between the first <tag> and its matching
// </tag>. Same-named tags nested inside the body (e.g. tool output that echoes
// the envelope format) are skipped by depth counting — a regex cannot balance
// identical delimiters, so this is an explicit index scan.
func ExtractTag(text, tag string) (string, error) {
	bodyStart, bodyEnd, err := tagBounds(text, tag)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text[bodyStart:bodyEnd]), nil
}

// tagBounds locates the body of the first <tag>...</tag> pair and returns the
// byte offsets of the body (exclusive of the tags themselves). It maintains a
// depth counter so that nested occurrences of the same tag name inside the
// body do not terminate the scan early.
func tagBounds(text, tag string) (int, int, error) {
	open := "<" + tag + ">"
	closing := "</" + tag + ">"

	start := strings.Index(text, open)
	if start == -1 {
		return 0, 0, fmt.Errorf("%w: <%s> not found", ErrMissingTag, tag)
	}

	bodyStart := start + len(open)
	pos := bodyStart
	depth := 1

	for {
		nextClose := strings.Index(text[pos:], closing)
		if nextClose == -1 {
			return 0, 0, fmt.Errorf("%w: <%s> is never closed", ErrMalformedTag, tag)
		}
		nextOpen := strings.Index(text[pos:], open)

		if nextOpen != -1 && nextOpen < nextClose {
			// Another opening tag before the close — enter a nested level.
			depth++
			pos += nextOpen + len(open)
			continue
		}

		depth--
		if depth == 0 {
			return bodyStart, pos + nextClose, nil
		}
		pos += nextClose + len(closing)
	}
}
