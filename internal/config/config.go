// README: Config loader with env defaults for HTTP, LLM provider, storage, auth and logging.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderOpenAI      = "openai"
)

const (
	defaultHFModel     = "deepseek-ai/DeepSeek-V3.1"
	defaultGeminiModel = "gemini-2.0-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

var defaultAllowedOrigins = []string{
	"https://*.replit.dev",
	"https://*.repl.co",
	"http://localhost:5000",
	"http://127.0.0.1:5000",
	"http://0.0.0.0:5000",
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL is empty when the provider default should be used.
	BaseURL string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

type Config struct {
	HTTP struct {
		Addr           string
		AllowedOrigins []string
	}
	LLM LLMConfig
	DB  struct {
		DSN          string
		MonthlyQuota int
	}
	Redis struct {
		Addr        string
		HistorySize int
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Maps struct {
		APIKey string
	}
	Log LogConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the process win.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("SKYPLAN_HTTP_ADDR", ":5000")
	cfg.HTTP.AllowedOrigins = envOrDefaultList("SKYPLAN_ALLOWED_ORIGINS", defaultAllowedOrigins)

	llm, err := loadLLM()
	if err != nil {
		return Config{}, err
	}
	cfg.LLM = llm

	cfg.DB.DSN = os.Getenv("SKYPLAN_DB_DSN")
	cfg.DB.MonthlyQuota = envOrDefaultInt("SKYPLAN_MONTHLY_QUOTA", 100)
	cfg.Redis.Addr = os.Getenv("SKYPLAN_REDIS_ADDR")
	cfg.Redis.HistorySize = envOrDefaultInt("SKYPLAN_HISTORY_SIZE", 10)
	cfg.Firebase.ProjectID = os.Getenv("SKYPLAN_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("SKYPLAN_FIREBASE_CREDENTIALS")
	cfg.Maps.APIKey = os.Getenv("SKYPLAN_MAPS_API_KEY")

	cfg.Log.Level = envOrDefault("SKYPLAN_LOG_LEVEL", "info")
	cfg.Log.Format = envOrDefault("SKYPLAN_LOG_FORMAT", "json")
	cfg.Log.File = os.Getenv("SKYPLAN_LOG_FILE")

	if cfg.DB.MonthlyQuota <= 0 {
		return Config{}, fmt.Errorf("SKYPLAN_MONTHLY_QUOTA must be positive, got %d", cfg.DB.MonthlyQuota)
	}
	if cfg.Redis.HistorySize <= 0 {
		return Config{}, fmt.Errorf("SKYPLAN_HISTORY_SIZE must be positive, got %d", cfg.Redis.HistorySize)
	}
	return cfg, nil
}

func loadLLM() (LLMConfig, error) {
	llm := LLMConfig{
		Provider: strings.ToLower(envOrDefault("SKYPLAN_LLM_PROVIDER", ProviderHuggingFace)),
		BaseURL:  os.Getenv("SKYPLAN_LLM_BASE_URL"),
		Timeout:  time.Duration(envOrDefaultInt("SKYPLAN_LLM_TIMEOUT_SECONDS", 60)) * time.Second,
	}
	if llm.Timeout <= 0 {
		return LLMConfig{}, fmt.Errorf("SKYPLAN_LLM_TIMEOUT_SECONDS must be positive")
	}

	var err error
	switch llm.Provider {
	case ProviderHuggingFace:
		llm.APIKey, err = envOrError("HF_TOKEN")
		llm.Model = envOrDefault("HUGGINGFACE_MODEL", defaultHFModel)
	case ProviderGemini:
		llm.APIKey, err = envOrError("GEMINI_API_KEY")
		llm.Model = envOrDefault("GEMINI_MODEL", defaultGeminiModel)
	case ProviderOpenAI:
		llm.APIKey, err = envOrError("OPENAI_API_KEY")
		llm.Model = envOrDefault("OPENAI_MODEL", defaultOpenAIModel)
	default:
		return LLMConfig{}, fmt.Errorf("unsupported llm provider %q", llm.Provider)
	}
	if err != nil {
		return LLMConfig{}, err
	}
	return llm, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("environment variable %s is required", key)
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
