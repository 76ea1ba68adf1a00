// README: Flight query parsing, search history, card and deep-link handlers.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skyplan/internal/flights"
	"skyplan/internal/http/middleware"
	"skyplan/internal/modules/history"
	"skyplan/internal/service"
)

// FlightQueryParser is satisfied by *service.FlightQueryParser.
type FlightQueryParser interface {
	ParseFlightQuery(ctx context.Context, query string) service.FlightQuery
}

// SearchHistory is satisfied by *history.Service.
type SearchHistory interface {
	Record(ctx context.Context, uid string, e history.Entry) error
	Recent(ctx context.Context, uid string, limit int) ([]history.Entry, error)
}

type FlightHandler struct {
	parser  FlightQueryParser
	history SearchHistory
	quota   QuotaService
	now     func() time.Time
}

type FlightOption func(*FlightHandler)

// WithHistory records parsed queries and serves them from Recent.
func WithHistory(h SearchHistory) FlightOption {
	return func(fh *FlightHandler) { fh.history = h }
}

// WithQuota charges one request per parse that reaches the LLM.
func WithQuota(q QuotaService) FlightOption {
	return func(fh *FlightHandler) { fh.quota = q }
}

// WithClock overrides the clock used for default departure dates.
func WithClock(now func() time.Time) FlightOption {
	return func(fh *FlightHandler) { fh.now = now }
}

func NewFlightHandler(parser FlightQueryParser, opts ...FlightOption) *FlightHandler {
	h := &FlightHandler{parser: parser, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type parseReq struct {
	Query string `json:"query"`
}

// Parse handles POST /api/flights/parse.
func (h *FlightHandler) Parse(c *gin.Context) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}
	if len(req.Query) > maxQueryLength {
		writeError(c, http.StatusBadRequest, "query too long")
		return
	}

	if !chargeQuota(c, h.quota) {
		return
	}

	ctx := c.Request.Context()
	parsed := h.parser.ParseFlightQuery(ctx, req.Query)

	if h.history != nil && !parsed.Failed {
		entry := history.Entry{
			Query:        req.Query,
			Destination:  parsed.Destination,
			Dates:        parsed.Dates,
			OtherDetails: parsed.OtherDetails,
		}
		if err := h.history.Record(ctx, middleware.CallerUID(c), entry); err != nil {
			slog.WarnContext(ctx, "search history not recorded", "error", err)
		}
	}

	writeJSON(c, http.StatusOK, parsed)
}

// Recent handles GET /api/flights/recent?limit=n.
func (h *FlightHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	if h.history == nil {
		writeJSON(c, http.StatusOK, gin.H{"searches": []history.Entry{}})
		return
	}

	entries, err := h.history.Recent(c.Request.Context(), middleware.CallerUID(c), limit)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "search history lookup failed", "error", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"searches": entries})
}

type cardReq struct {
	Flight       *flights.Flight      `json:"flight"`
	Layout       string               `json:"layout"`
	SearchParams flights.SearchParams `json:"searchParams"`
}

// Card handles POST /api/flights/card?format=json|html.
func (h *FlightHandler) Card(c *gin.Context) {
	var req cardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Flight == nil {
		writeError(c, http.StatusBadRequest, "missing flight")
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "json"))
	if format != "json" && format != "html" {
		writeError(c, http.StatusBadRequest, "format must be json or html")
		return
	}

	card, err := flights.NewCard(*req.Flight, flights.ParseLayout(req.Layout), req.SearchParams, h.now())
	if errors.Is(err, flights.ErrNoLegs) {
		writeError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	if format == "json" {
		writeJSON(c, http.StatusOK, card)
		return
	}
	var buf bytes.Buffer
	if err := flights.Render(&buf, card); err != nil {
		slog.ErrorContext(c.Request.Context(), "card render failed", "error", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

type searchURLReq struct {
	Flight       flights.Flight       `json:"flight"`
	SearchParams flights.SearchParams `json:"searchParams"`
}

// SearchURL handles POST /api/flights/search-url.
func (h *FlightHandler) SearchURL(c *gin.Context) {
	var req searchURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"url": flights.SearchURL(req.Flight, req.SearchParams, h.now())})
}
