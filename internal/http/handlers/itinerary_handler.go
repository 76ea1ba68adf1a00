// README: Itinerary generation handler.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyplan/internal/service"
)

// ItineraryGenerator is satisfied by *service.ItineraryPlanner.
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, prefs service.ItineraryPreferences) service.Itinerary
}

type ItineraryHandler struct {
	planner ItineraryGenerator
	quota   QuotaService
}

// NewItineraryHandler builds the handler; quota may be nil.
func NewItineraryHandler(planner ItineraryGenerator, quota QuotaService) *ItineraryHandler {
	return &ItineraryHandler{planner: planner, quota: quota}
}

// Create handles POST /api/itineraries. Provider failures still answer 200
// with the fallback text and fallback=true.
func (h *ItineraryHandler) Create(c *gin.Context) {
	var prefs service.ItineraryPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	total := len(prefs.Budget) + len(prefs.TravelStyle) + len(prefs.Interests) +
		len(prefs.Duration) + len(prefs.LocationPreferences)
	if total > maxQueryLength {
		writeError(c, http.StatusBadRequest, "preferences too long")
		return
	}

	if !chargeQuota(c, h.quota) {
		return
	}
	writeJSON(c, http.StatusOK, h.planner.GenerateItinerary(c.Request.Context(), prefs))
}
