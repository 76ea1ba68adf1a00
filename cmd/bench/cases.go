// README: Bench cases covering health, flight card and deep-link endpoints, quota table, history and load.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"

	benchClientID = "bench-runner"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

var benchFlight = map[string]any{
	"airline":  "Emirates",
	"provider": "Emirates",
	"price":    450,
	"legs": []map[string]any{{
		"airline": "Emirates", "departureTime": "08:00", "arrivalTime": "18:30",
		"fromCode": "LHR", "toCode": "DXB", "duration": "7h 30m", "stops": "Direct",
	}},
	"stops": 0,
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: ai_usage table exists",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				var exists bool
				err := r.db.QueryRow(ctx,
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
					"ai_usage",
				).Scan(&exists)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if !exists {
					return Result{Status: statusFail, Note: "missing table: ai_usage"}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},

		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, func(h http.Header, body []byte) string {
			if string(body) != "OK" {
				return "unexpected body " + string(body)
			}
			if h.Get("X-Frame-Options") != "SAMEORIGIN" {
				return "missing X-Frame-Options"
			}
			return ""
		}),

		httpCase("Flights: search url one-way", http.MethodPost, base+"/api/flights/search-url", map[string]any{
			"flight":       benchFlight,
			"searchParams": map[string]any{"origin": "Glasgow", "departureDate": "2030-01-02"},
		}, http.StatusOK, func(_ http.Header, body []byte) string {
			var resp struct{ URL string }
			if err := json.Unmarshal(body, &resp); err != nil {
				return err.Error()
			}
			if strings.Contains(resp.URL, "through") {
				return "one-way url contains through"
			}
			return ""
		}),

		httpCase("Flights: search url round trip", http.MethodPost, base+"/api/flights/search-url", map[string]any{
			"flight":       benchFlight,
			"searchParams": map[string]any{"departureDate": "2030-01-02", "returnDate": "2030-01-09"},
		}, http.StatusOK, func(_ http.Header, body []byte) string {
			if !bytes.Contains(body, []byte("+through+2030-01-09")) {
				return "round-trip url missing through clause"
			}
			return ""
		}),

		httpCase("Flights: list card json", http.MethodPost, base+"/api/flights/card", map[string]any{
			"flight": benchFlight, "layout": "list",
		}, http.StatusOK, nil),

		httpCase("Flights: grid card html", http.MethodPost, base+"/api/flights/card?format=html", map[string]any{
			"flight": benchFlight, "layout": "grid",
		}, http.StatusOK, func(h http.Header, _ []byte) string {
			if !strings.HasPrefix(h.Get("Content-Type"), "text/html") {
				return "content-type " + h.Get("Content-Type")
			}
			return ""
		}),

		httpCase("Flights: list card without legs -> 422", http.MethodPost, base+"/api/flights/card", map[string]any{
			"flight": map[string]any{"price": 10},
		}, http.StatusUnprocessableEntity, nil),

		httpCase("Flights: parse empty query -> 400", http.MethodPost, base+"/api/flights/parse", map[string]any{
			"query": "",
		}, http.StatusBadRequest, nil),

		llmCase(httpCase("Flights: parse query (LLM)", http.MethodPost, base+"/api/flights/parse", map[string]any{
			"query": "Flights to Paris from London on 12 May for two adults",
		}, http.StatusOK, nil)),

		llmCase(httpCase("Itinerary: generate (LLM)", http.MethodPost, base+"/api/itineraries", map[string]any{
			"budget": "£1500", "duration": "3", "locationPreferences": "Lisbon",
		}, http.StatusOK, nil)),

		httpCase("Flights: recent searches", http.MethodGet, base+"/api/flights/recent?limit=5", nil, http.StatusOK, nil),

		{
			Name: "Perf: card rendering under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/flights/card?format=html", map[string]any{
					"flight": benchFlight, "layout": "grid",
				})
			},
		},
	}
}

// bodyCheck returns a failure note, or "" when the response is acceptable.
type bodyCheck func(h http.Header, body []byte) string

func httpCase(name, method, url string, body any, wantStatus int, check bodyCheck) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = bytes.NewReader(b)
			}
			req, err := http.NewRequestWithContext(ctx, method, url, reader)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Client-ID", benchClientID)
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode != wantStatus {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", resp.StatusCode, wantStatus)}
			}
			if check != nil {
				if note := check(resp.Header, respBody); note != "" {
					return Result{Status: statusFail, Latency: latency, Note: note}
				}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

// llmCase skips tc unless -llm was given.
func llmCase(tc TestCase) TestCase {
	run := tc.Run
	tc.Run = func(ctx context.Context, r *Runner) Result {
		if !r.cfg.LLM {
			return Result{Status: statusSkip, Note: "llm=false"}
		}
		return run(ctx, r)
	}
	return tc
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				if resp.StatusCode != http.StatusOK {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}
