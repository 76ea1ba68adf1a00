// README: Base handler utilities (JSON helpers, request limits).
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyplan/internal/http/middleware"
	"skyplan/internal/modules/usage"
)

// maxQueryLength bounds free-text input forwarded to the LLM.
const maxQueryLength = 2000

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// QuotaService deducts one LLM request from a caller's allowance.
// *usage.Service satisfies it.
type QuotaService interface {
	UseToken(ctx context.Context, uid string) error
}

// chargeQuota spends one request for the caller and writes the error
// response when it cannot. A nil q charges nothing. Call it only after the
// request has been validated.
func chargeQuota(c *gin.Context, q QuotaService) bool {
	if q == nil {
		return true
	}
	uid := middleware.CallerUID(c)
	err := q.UseToken(c.Request.Context(), uid)
	switch {
	case err == nil:
		return true
	case errors.Is(err, usage.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, "monthly request quota exhausted")
	default:
		slog.ErrorContext(c.Request.Context(), "quota check failed", "error", err, "uid", uid)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
	return false
}
