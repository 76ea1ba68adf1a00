package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SKYPLAN_HTTP_ADDR", "SKYPLAN_ALLOWED_ORIGINS",
		"SKYPLAN_LLM_PROVIDER", "SKYPLAN_LLM_BASE_URL", "SKYPLAN_LLM_TIMEOUT_SECONDS",
		"HF_TOKEN", "HUGGINGFACE_MODEL", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
		"SKYPLAN_DB_DSN", "SKYPLAN_MONTHLY_QUOTA", "SKYPLAN_REDIS_ADDR", "SKYPLAN_HISTORY_SIZE",
		"SKYPLAN_FIREBASE_PROJECT_ID", "SKYPLAN_FIREBASE_CREDENTIALS", "SKYPLAN_MAPS_API_KEY",
		"SKYPLAN_LOG_LEVEL", "SKYPLAN_LOG_FORMAT", "SKYPLAN_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingHFToken(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when HF_TOKEN is unset")
	}
	if !strings.Contains(err.Error(), "HF_TOKEN") {
		t.Errorf("error should name HF_TOKEN, got %q", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HF_TOKEN", "hf_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":5000" {
		t.Errorf("HTTP.Addr = %q, want :5000", cfg.HTTP.Addr)
	}
	if cfg.LLM.Provider != ProviderHuggingFace {
		t.Errorf("LLM.Provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "hf_test" {
		t.Errorf("LLM.APIKey = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "deepseek-ai/DeepSeek-V3.1" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("LLM.Timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.DB.MonthlyQuota != 100 || cfg.Redis.HistorySize != 10 {
		t.Errorf("quota/history defaults = %d/%d", cfg.DB.MonthlyQuota, cfg.Redis.HistorySize)
	}
	if len(cfg.HTTP.AllowedOrigins) != len(defaultAllowedOrigins) {
		t.Errorf("AllowedOrigins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults = %q/%q", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HF_TOKEN", "hf_test")
	t.Setenv("HUGGINGFACE_MODEL", "meta-llama/Llama-3.1-8B-Instruct")
	t.Setenv("SKYPLAN_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SKYPLAN_LLM_TIMEOUT_SECONDS", "5")
	t.Setenv("SKYPLAN_MONTHLY_QUOTA", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Model != "meta-llama/Llama-3.1-8B-Instruct" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if got := cfg.HTTP.AllowedOrigins; len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", got)
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("LLM.Timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.DB.MonthlyQuota != 3 {
		t.Errorf("MonthlyQuota = %d", cfg.DB.MonthlyQuota)
	}
}

func TestLoad_Providers(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantErr   string
		wantModel string
	}{
		{
			name:      "gemini",
			env:       map[string]string{"SKYPLAN_LLM_PROVIDER": "Gemini", "GEMINI_API_KEY": "g"},
			wantModel: "gemini-2.0-flash",
		},
		{
			name:    "gemini without key",
			env:     map[string]string{"SKYPLAN_LLM_PROVIDER": "gemini"},
			wantErr: "GEMINI_API_KEY",
		},
		{
			name:      "openai",
			env:       map[string]string{"SKYPLAN_LLM_PROVIDER": "openai", "OPENAI_API_KEY": "o", "OPENAI_MODEL": "gpt-4o"},
			wantModel: "gpt-4o",
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"SKYPLAN_LLM_PROVIDER": "bard"},
			wantErr: "unsupported llm provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.LLM.Model != tt.wantModel {
				t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, tt.wantModel)
			}
		})
	}
}

func TestLoad_RejectsNonPositiveHistorySize(t *testing.T) {
	clearEnv(t)
	t.Setenv("HF_TOKEN", "hf_test")
	t.Setenv("SKYPLAN_HISTORY_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for SKYPLAN_HISTORY_SIZE=0")
	}
}
