package ai

// Chat roles understood by the completion endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. Ordering within a conversation is
// chronological; messages are never mutated after creation.
type Message struct {
	Role    string `json:"role" yaml:"role"`                     // "system", "user" or "assistant"
	Content string `json:"content" yaml:"content"`               // text content
	Name    string `json:"name,omitempty" yaml:"name,omitempty"` // optional sender label
}

// SendRequest describes one outgoing message to be completed.
type SendRequest struct {
	ConversationID string // opaque key for the rolling history
	Name           string // optional sender label forwarded to the model
	Text           string // message content
	Role           string // defaults to RoleUser when empty
	SystemMessage  string // per-call override of the configured system message
}

// Usage reports token consumption for a single completion call, when the
// endpoint provides it.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// ResponseMessage is the model's reply plus the raw response detail for
// caller introspection.
type ResponseMessage struct {
	Content string `json:"content"`
	Role    string `json:"role"`
	ID      string `json:"id,omitempty"`
	Created int64  `json:"created,omitempty"`
	Model   string `json:"model,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}
