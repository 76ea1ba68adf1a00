package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://router.huggingface.co/v1"
	DefaultModel       = "deepseek-ai/DeepSeek-V3.1"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
	DefaultTimeout     = 60 * time.Second
)

// Client talks to the Hugging Face router chat-completions endpoint.
// It is safe for concurrent use; every call performs exactly one request.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithBaseURL points the client at another OpenAI-compatible router.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithModel sets the model used when a request does not name one.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient returns a Client authenticated with apiKey.
// It fails with ErrMissingAPIKey before any network activity when apiKey is blank.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatRequestBody struct {
	Messages    []ChatMessage `json:"messages"`
	Model       string        `json:"model"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ChatCompletion performs one POST to <base>/chat/completions.
// A non-2xx answer is reported as *APIError.
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body := chatRequestBody{
		Messages:    req.Messages,
		Model:       c.model,
		Stream:      req.Stream,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
	if req.Model != "" {
		body.Model = req.Model
	}
	if req.Temperature != nil {
		body.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		body.MaxTokens = *req.MaxTokens
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("huggingface: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	slog.DebugContext(ctx, "llm request", "model", body.Model, "messages", len(body.Messages))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("huggingface: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out ChatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("huggingface: unmarshal response: %w", err)
	}
	return &out, nil
}

// GenerateResponse returns the first choice's content, or "" when the API
// returned no choices.
func (c *Client) GenerateResponse(ctx context.Context, prompt string, systemMessage string) (string, error) {
	resp, err := c.ChatCompletion(ctx, ChatCompletionRequest{Messages: buildMessages(prompt, systemMessage)})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(prompt, systemMessage string) []ChatMessage {
	messages := make([]ChatMessage, 0, 2)
	if systemMessage != "" {
		messages = append(messages, ChatMessage{Role: RoleSystem, Content: systemMessage})
	}
	return append(messages, ChatMessage{Role: RoleUser, Content: prompt})
}

var _ LLMProvider = (*Client)(nil)
