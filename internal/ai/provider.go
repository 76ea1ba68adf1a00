package ai

import (
	"context"
	"fmt"
	"net/http"

	"skyplan/internal/config"
)

// NewProvider builds the LLMProvider named by cfg.Provider.
// The returned close func releases provider resources and is never nil.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (LLMProvider, func(), error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	noop := func() {}

	switch cfg.Provider {
	case config.ProviderHuggingFace, "":
		c, err := NewClient(cfg.APIKey, WithBaseURL(cfg.BaseURL), WithModel(cfg.Model), WithHTTPClient(httpClient))
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
		if err != nil {
			return nil, noop, err
		}
		return p, func() { _ = p.Close() }, nil
	case config.ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	default:
		return nil, noop, fmt.Errorf("ai: unsupported provider %q", cfg.Provider)
	}
}
