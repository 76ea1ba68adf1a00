package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIProvider implements LLMProvider against any OpenAI-compatible API
// through the official SDK.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider builds a provider; baseURL and model fall back to the
// OpenAI defaults when empty, httpClient to the SDK default when nil.
func NewOpenAIProvider(apiKey, baseURL, model string, httpClient *http.Client) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		// One request per call, like the Hugging Face client.
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &OpenAIProvider{client: openai.NewClient(opts...), model: model}, nil
}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemMessage string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	for _, msg := range buildMessages(prompt, systemMessage) {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(DefaultTemperature),
		MaxTokens:   openai.Int(DefaultMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

var _ LLMProvider = (*OpenAIProvider)(nil)
