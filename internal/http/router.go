// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"skyplan/internal/http/handlers"
	"skyplan/internal/http/middleware"
	"skyplan/internal/infra"
)

// RouterDeps wires services into the router. Verifier, Quota and History
// are optional; nil disables the feature.
type RouterDeps struct {
	Itineraries    handlers.ItineraryGenerator
	FlightQueries  handlers.FlightQueryParser
	History        handlers.SearchHistory
	Quota          handlers.QuotaService
	Verifier       infra.TokenVerifier
	AllowedOrigins []string
	Logger         *slog.Logger
	Now            func() time.Time
}

func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.SecurityHeaders(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	if deps.Verifier != nil {
		api.Use(middleware.Auth(deps.Verifier))
	} else {
		api.Use(middleware.Anonymous())
	}

	// LLM-backed handlers charge the caller's quota once input is valid.
	itineraryHandler := handlers.NewItineraryHandler(deps.Itineraries, deps.Quota)
	api.POST("/itineraries", itineraryHandler.Create)

	opts := []handlers.FlightOption{handlers.WithQuota(deps.Quota)}
	if deps.History != nil {
		opts = append(opts, handlers.WithHistory(deps.History))
	}
	if deps.Now != nil {
		opts = append(opts, handlers.WithClock(deps.Now))
	}
	flightHandler := handlers.NewFlightHandler(deps.FlightQueries, opts...)
	api.POST("/flights/parse", flightHandler.Parse)
	api.GET("/flights/recent", flightHandler.Recent)
	api.POST("/flights/card", flightHandler.Card)
	api.POST("/flights/search-url", flightHandler.SearchURL)

	return cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.ClientIDHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(r)
}
