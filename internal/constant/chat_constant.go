package constant

import "time"

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// ChatSessionDefaultTitle is the sentinel title a session carries until
	// its first message is appended.
	ChatSessionDefaultTitle = "Untitled"

	// ChatSessionTitleMaxLen is the number of runes of the first user message
	// kept as the session title. Longer messages get ChatSessionTitleEllipsis.
	ChatSessionTitleMaxLen   = 50
	ChatSessionTitleEllipsis = "..."
)

// Turn states for the per-user turn lifecycle.
const (
	TurnStateIdle     = "IDLE"
	TurnStateAwaiting = "AWAITING_RESPONSE"
)

const (
	// Document chunking defaults, shared by the splitter and the document service.
	DocumentChunkSize    = 1000
	DocumentChunkOverlap = 100

	// Max chunks injected as context into a chat turn.
	DocumentContextLimit = 5
)

const (
	// Watermill topic carrying turn notifications to the delivery consumer.
	TurnEventsTopicName = "CHAT_TURN_EVENTS"

	TranslationCacheTTL = 24 * time.Hour
)
