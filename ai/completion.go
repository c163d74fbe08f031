package ai

import "context"

// CompletionRequest is the fully assembled payload for a single completion
// call: the ordered message list plus the effective parameters. It is built
// fresh per call and never stored.
type CompletionRequest struct {
	Messages []Message
	Params   CompletionParams
}

// CompletionResult carries the model's reply and the raw response metadata.
type CompletionResult struct {
	Content string
	Role    string
	ID      string
	Created int64
	Model   string
	Usage   *Usage
}

// Completer executes a single chat-completion call against a remote model.
// Implementations own transport, authentication and wire format; failures
// must be reported as *CompletionError.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}
