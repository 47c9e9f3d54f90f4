package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/config"
	"github.com/stemsi/exstem-summary/internal/database"
	"github.com/stemsi/exstem-summary/internal/handler"
	"github.com/stemsi/exstem-summary/internal/logger"
	"github.com/stemsi/exstem-summary/internal/repository"
	"github.com/stemsi/exstem-summary/internal/router"
	"github.com/stemsi/exstem-summary/internal/service"
	"github.com/stemsi/exstem-summary/internal/upstream"
	"github.com/stemsi/exstem-summary/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("upstream", cfg.UpstreamBaseURL).
		Bool("verify_tokens", cfg.JWTSecret != "").
		Msg("Starting Coaching Summary")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional token store) ───────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	var tokenStore service.TokenStore
	if rdb != nil {
		defer rdb.Close()
		tokenStore = repository.NewScopedTokenRepository(rdb, cfg.TokenScope)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	tokenService := service.NewTokenService(tokenStore, cfg.UpstreamAccessToken, log)
	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, tokenService, log)
	loader := service.NewLoader(client, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Summary: handler.NewSummaryHandler(loader, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// In-flight page loads are cancelled with their requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
