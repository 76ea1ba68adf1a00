package service

import (
	"context"
	"errors"
)

// stubLLM is a test double for ai.LLMProvider.
type stubLLM struct {
	reply string
	err   error

	prompts []string
}

func (s *stubLLM) GenerateResponse(_ context.Context, prompt, _ string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

var errUpstream = errors.New("HTTP 503: upstream unavailable")

type stubResolver struct {
	resolved string
	err      error
	calls    []string
}

func (r *stubResolver) Resolve(_ context.Context, place string) (string, error) {
	r.calls = append(r.calls, place)
	return r.resolved, r.err
}
