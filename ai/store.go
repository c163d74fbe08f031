package ai

// ConversationStore manages per-conversation message history.
type ConversationStore interface {
	// GetHistory returns the retained messages for a conversation, oldest
	// first, trimmed to the retention cap. Unknown ids yield an empty,
	// now-tracked history. Never fails.
	GetHistory(conversationID string) []Message

	// SetHistory replaces the stored sequence wholesale. No trimming is
	// applied at set time; it happens lazily on the next read.
	SetHistory(conversationID string, messages []Message)

	// Append adds one message to the end of the conversation, creating it
	// if absent. Transient over-capacity is allowed and resolved on the
	// next GetHistory.
	Append(conversationID string, message Message)
}
