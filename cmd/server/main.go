package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
	"github.com/flyhigh-team/flyhigh-web/internal/booking"
	"github.com/flyhigh-team/flyhigh-web/internal/config"
	"github.com/flyhigh-team/flyhigh-web/internal/handlers"
	"github.com/flyhigh-team/flyhigh-web/internal/router"
	"github.com/flyhigh-team/flyhigh-web/internal/session"
)

func main() {
	// A missing .env is fine; the config layer has defaults.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	var store session.Store = session.NewMemoryStore()
	if cfg.Session.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(context.Background(), cfg.Session.RedisAddr)
		if err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.Session.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	}

	sessions := session.NewManager(store, cfg.Session.TTL)
	drafts := booking.NewDraftStore(cfg.Booking.DraftTTL)

	h := handlers.NewHandler(api, sessions, drafts)
	r := router.SetupRouter(h)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting",
			"app", cfg.App.Name,
			"version", cfg.App.Version,
			"port", cfg.HTTP.Port,
			"backend", cfg.Backend.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
