package port

import (
	"context"

	"eventlex/internal/llm"
)

// CompletionClient issues one logical chat-completion request and returns the
// assistant reply text. Implementations own retry, timeout, and progress
// reporting; progress may be nil.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, progress llm.ProgressFunc) (string, error)
}
