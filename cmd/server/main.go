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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/prepify/backend/internal/api"
	"github.com/prepify/backend/internal/completion"
	"github.com/prepify/backend/internal/infrastructure/config"
	"github.com/prepify/backend/internal/service"
	"github.com/prepify/backend/internal/session"

	_ "github.com/prepify/backend/docs" // generated swagger docs
)

// @title           Prepify API
// @version         1.0
// @description     Interview practice backend: AI-generated questions, answer evaluation, and per-user interview sessions.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	llm := completion.NewTogetherClient(cfg.APIURL, cfg.APIKey, cfg.Model)
	relay := service.NewInterviewService(llm, logger)
	sessions := session.NewStore(relay, relay, logger)
	handler := api.NewHandler(relay, sessions, logger)

	// ── Routes ──────────────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(api.Logging(logger))
	r.Use(api.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(r, handler)

	// Swagger UI served at /swagger/
	r.Mount("/swagger", httpSwagger.WrapHandler)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      3 * time.Minute, // generation calls can be slow
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions.StartJanitor(ctx, cfg.SessionTTL)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "model", cfg.Model)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
