package agent

import (
	"github.com/sipeed/toolwire/pkg/logger"
	"github.com/sipeed/toolwire/pkg/providers"
)

// TruncateHistory trims a conversation that outgrew its budget. The first
// message is always kept (it anchors the task), then the most recent keep
// messages. Orphaned tool messages at the cut point are dropped as well: a
// tool result whose call was trimmed away is rejected by providers.
func TruncateHistory(messages []providers.Message, keep int) []providers.Message {
	if keep < 0 {
		keep = 0
	}
	if len(messages) <= keep+1 {
		return messages
	}

	tail := messages[len(messages)-keep:]
	for len(tail) > 0 && tail[0].Role == "tool" {
		tail = tail[1:]
	}

	trimmed := make([]providers.Message, 0, len(tail)+1)
	trimmed = append(trimmed, messages[0])
	trimmed = append(trimmed, tail...)

	logger.DebugCF("agent", "History truncated",
		map[string]interface{}{
			"before": len(messages),
			"after":  len(trimmed),
		})
	return trimmed
}
