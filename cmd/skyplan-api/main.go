// README: Entry point; loads config, wires the LLM provider and optional stores, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"skyplan/internal/ai"
	"skyplan/internal/config"
	httptransport "skyplan/internal/http"
	"skyplan/internal/infra"
	"skyplan/internal/logging"
	"skyplan/internal/maps"
	"skyplan/internal/modules/history"
	"skyplan/internal/modules/usage"
	"skyplan/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("skyplan-api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.Init(cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, closeLLM, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	defer closeLLM()
	logger.Info("llm provider ready", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)

	deps := httptransport.RouterDeps{
		Itineraries:    service.NewItineraryPlanner(llm),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Logger:         logger,
	}

	var parserOpts []service.FlightQueryOption
	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocoder(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		parserOpts = append(parserOpts, service.WithPlaceResolver(geocoder))
		logger.Info("destination resolution enabled")
	}
	deps.FlightQueries = service.NewFlightQueryParser(llm, parserOpts...)

	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		store := usage.NewStore(pool, cfg.DB.MonthlyQuota)
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		deps.Quota = usage.NewService(store)
		logger.Info("usage quota enabled", "monthly_quota", cfg.DB.MonthlyQuota)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		deps.History = history.NewService(history.NewStore(rdb, cfg.Redis.HistorySize))
		logger.Info("search history enabled", "size", cfg.Redis.HistorySize)
	}

	if cfg.Firebase.ProjectID != "" {
		verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
		deps.Verifier = verifier
		logger.Info("firebase auth enabled", "project_id", cfg.Firebase.ProjectID)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
