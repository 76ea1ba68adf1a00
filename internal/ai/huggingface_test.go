package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("hf_secret", WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return srv, c
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
}

func TestNewClient_MissingKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		if _, err := NewClient(key); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("NewClient(%q) error = %v, want ErrMissingAPIKey", key, err)
		}
	}
}

func TestGenerateResponse_RequestShape(t *testing.T) {
	var got chatRequestBody
	var gotAuth, gotPath, gotContentType string

	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		writeCompletion(w, "hello traveller")
	})

	out, err := c.GenerateResponse(context.Background(), "plan a trip", "be brief")
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}
	if out != "hello traveller" {
		t.Errorf("content = %q", out)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer hf_secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if got.Model != DefaultModel || got.Stream || got.Temperature != DefaultTemperature || got.MaxTokens != DefaultMaxTokens {
		t.Errorf("defaults not applied: %+v", got)
	}
	if len(got.Messages) != 2 ||
		got.Messages[0] != (ChatMessage{Role: RoleSystem, Content: "be brief"}) ||
		got.Messages[1] != (ChatMessage{Role: RoleUser, Content: "plan a trip"}) {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestGenerateResponse_NoSystemMessage(t *testing.T) {
	var got chatRequestBody
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeCompletion(w, "ok")
	})

	if _, err := c.GenerateResponse(context.Background(), "only user", ""); err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != RoleUser {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestChatCompletion_Overrides(t *testing.T) {
	var got chatRequestBody
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeCompletion(w, "ok")
	})

	temp := 0.0
	maxTokens := 42
	_, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
		Messages:    []ChatMessage{{Role: RoleUser, Content: "hi"}},
		Model:       "other/model",
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if got.Model != "other/model" || got.Temperature != 0 || got.MaxTokens != 42 {
		t.Errorf("overrides not applied: %+v", got)
	}
}

func TestWithModel_SetsDefaultModel(t *testing.T) {
	var got chatRequestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	c, err := NewClient("k", WithBaseURL(srv.URL), WithModel("Qwen/Qwen2.5-72B-Instruct"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.GenerateResponse(context.Background(), "hi", ""); err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}
	if got.Model != "Qwen/Qwen2.5-72B-Instruct" {
		t.Errorf("model = %q", got.Model)
	}
}

func TestChatCompletion_NonSuccessStatus(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := c.GenerateResponse(context.Background(), "hi", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "HTTP 429: rate limited\n" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestGenerateResponse_EmptyChoices(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	out, err := c.GenerateResponse(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}
	if out != "" {
		t.Errorf("content = %q, want empty", out)
	}
}

func TestChatCompletion_MalformedBody(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := c.GenerateResponse(context.Background(), "hi", ""); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestChatCompletion_OneRequestPerCall(t *testing.T) {
	var calls atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _ = c.GenerateResponse(context.Background(), "hi", "")
	if n := calls.Load(); n != 1 {
		t.Errorf("requests = %d, want 1 (no retries)", n)
	}
}
