package media

// ContentPart represents a single part of a multimodal message. Tool results
// and providers exchange these without importing each other.
type ContentPart struct {
	Type      string `json:"type"`       // "text" or "image"
	Text      string `json:"text"`       // for type="text"
	MediaType string `json:"media_type"` // MIME type, e.g. "image/png"
	Data      string `json:"data"`       // base64-encoded image data
	FileName  string `json:"file_name"`  // original filename
}

// IsImage reports whether the part carries an image payload.
func (p ContentPart) IsImage() bool {
	return p.Type == "image" && p.Data != ""
}

// ResolvedMediaType returns the part's MIME type, falling back to the
// signature sniffer and then the JPEG default for untyped payloads.
func (p ContentPart) ResolvedMediaType() string {
	if p.MediaType != "" {
		return p.MediaType
	}
	if mime := SniffMIMEType(p.Data); mime != "" {
		return mime
	}
	return DefaultImageMIME
}
