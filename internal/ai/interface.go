package ai

import (
	"context"
)

// LLMProvider is the contract the prompt functions depend on.
// Implementations: Client (Hugging Face router), GeminiProvider, OpenAIProvider.
type LLMProvider interface {
	// GenerateResponse sends prompt as a single user turn, preceded by
	// systemMessage when it is non-empty, and returns the model's text.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string) (string, error)
}
