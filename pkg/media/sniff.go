package media

import (
	"bytes"
	"encoding/base64"
	"strings"
)

// DefaultImageMIME is what callers fall back to when a payload's signature
// is not recognized.
const DefaultImageMIME = "image/jpeg"

// imageSignature pairs a leading-byte prefix with the MIME type it identifies.
type imageSignature struct {
	prefix []byte
	mime   string
}

// Checked in order; none of these prefixes collide. The last entry is the
// generic RIFF container signature, so WAV/AVI payloads also report
// image/webp — known limitation, kept as-is.
var imageSignatures = []imageSignature{
	{[]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"},
	{[]byte{0x89, 0x50, 0x4E, 0x47}, "image/png"},
	{[]byte{0x47, 0x49, 0x46}, "image/gif"},
	{[]byte{0x52, 0x49, 0x46, 0x46}, "image/webp"},
}

// SniffMIMEType determines an image's MIME type from the magic number at the
// start of a base64 payload. An optional data URL header is stripped first.
// Returns "" when the signature is unrecognized or the payload does not
// decode; there is no error path — truncated input degrades to unknown.
func SniffMIMEType(payload string) string {
	payload = StripDataURLPrefix(payload)

	// 8 base64 chars decode to 6 bytes, more than any signature needs.
	head := strings.TrimRight(payload, "=")
	if len(head) > 8 {
		head = head[:8]
	}
	raw, err := base64.RawStdEncoding.DecodeString(head)
	if err != nil {
		return ""
	}

	for _, sig := range imageSignatures {
		if bytes.HasPrefix(raw, sig.prefix) {
			return sig.mime
		}
	}
	return ""
}

// SniffBytes matches raw leading bytes against the signature table.
// Used when the payload is already decoded (e.g. file intake).
func SniffBytes(raw []byte) string {
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(raw, sig.prefix) {
			return sig.mime
		}
	}
	return ""
}

// StripDataURLPrefix removes a leading data:<mime>;base64, header if present.
func StripDataURLPrefix(payload string) string {
	if !strings.HasPrefix(payload, "data:") {
		return payload
	}
	if i := strings.Index(payload, "base64,"); i != -1 {
		return payload[i+len("base64,"):]
	}
	return payload
}

// DataURL builds a data URL for a base64 payload, sniffing the MIME type
// when mimeType is empty and defaulting to JPEG for unknown signatures.
func DataURL(mimeType, data string) string {
	if mimeType == "" {
		mimeType = SniffMIMEType(data)
	}
	if mimeType == "" {
		mimeType = DefaultImageMIME
	}
	return "data:" + mimeType + ";base64," + data
}
