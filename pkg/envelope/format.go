package envelope

import "fmt"

// Status labels a tool outcome inside an envelope.
type Status string

const (
	StatusRejected Status = "rejected"
	StatusError    Status = "error"
	StatusFeedback Status = "feedback"
	StatusSuccess  Status = "success"
)

// statusNouns maps each status to the noun used in the human-readable
// preamble. Unknown statuses fall back to the success phrasing.
var statusNouns = map[Status]string{
	StatusRejected: "rejection message",
	StatusError:    "error",
	StatusFeedback: "feedback",
	StatusSuccess:  "result",
}

// StatusText returns the fixed English preamble for a tool outcome,
// e.g. "The Tool read_file returned the following error:".
func StatusText(name string, status Status) string {
	noun, ok := statusNouns[status]
	if !ok {
		noun = statusNouns[StatusSuccess]
	}
	return fmt.Sprintf("The Tool %s returned the following %s:", name, noun)
}

// Format builds the literal envelope layout consumed by Parse. The message
// is embedded verbatim; nested tag-like text inside it is handled on the
// read side by depth counting.
func Format(name string, status Status, message string, hasImages bool) string {
	s := fmt.Sprintf("<toolResponse>\n<toolName>%s</toolName>\n<toolStatus>%s</toolStatus>\n<toolResult>%s</toolResult>\n", name, status, message)
	if hasImages {
		s += ImagesAttachedMarker + "\n"
	}
	return s + "</toolResponse>"
}
