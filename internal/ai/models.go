package ai

import (
	"errors"
	"fmt"
)

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one turn of a conversation, sent to the API as-is.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest describes one completion call.
// Zero Model and nil Temperature/MaxTokens take the client defaults.
type ChatCompletionRequest struct {
	Messages    []ChatMessage
	Model       string
	Stream      bool
	Temperature *float64
	MaxTokens   *int
}

// ChatCompletionResponse mirrors the subset of the OpenAI-style payload we read.
type ChatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ErrMissingAPIKey is returned by constructors when no API token is supplied.
var ErrMissingAPIKey = errors.New("ai: api key is required")

// APIError is returned when the remote endpoint answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}
