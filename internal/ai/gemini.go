package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewGeminiProvider initializes a new Gemini client. A positive timeout
// bounds every GenerateResponse call; zero means DefaultTimeout.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiProvider{client: client, modelName: modelName, timeout: timeout}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// GenerateResponse sends prompt with the same sampling defaults as the
// Hugging Face client and joins the text parts of the first candidate.
// A reply without candidates yields "".
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// Sampling settings live on the model handle.
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(DefaultTemperature)
	model.SetMaxOutputTokens(DefaultMaxTokens)
	if systemMessage != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemMessage)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return candidateText(resp), nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return text.String()
}

var _ LLMProvider = (*GeminiProvider)(nil)
