// README: Smoke and load runner for a live skyplan-api; executes HTTP/DB/Redis checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL string
	DSN     string
	// RedisAddr is optional; history checks are skipped without it.
	RedisAddr string
	// LLM enables cases that reach the language model and consume quota.
	LLM         bool
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("SKYPLAN_BENCH_BASE_URL", "http://localhost:5000"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("SKYPLAN_DB_DSN"), "Postgres DSN (optional)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("SKYPLAN_REDIS_ADDR"), "Redis address (optional)")
	flag.BoolVar(&cfg.LLM, "llm", envOrDefaultBool("SKYPLAN_BENCH_LLM", false), "Run cases that call the LLM")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("SKYPLAN_BENCH_STRICT", false), "Fail on skipped cases")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("SKYPLAN_BENCH_TIMEOUT", 2*time.Minute), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("SKYPLAN_BENCH_CONCURRENCY", 20), "Concurrency for load cases")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("SKYPLAN_BENCH_DURATION", 10*time.Second), "Duration for load cases")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
