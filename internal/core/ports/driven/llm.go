package driven

import "context"

// LLMService provides single-turn chat completion. Each call is
// independent; no conversation state is kept across requests.
type LLMService interface {
	// Complete forwards a user message verbatim and returns the reply text.
	Complete(ctx context.Context, message string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
