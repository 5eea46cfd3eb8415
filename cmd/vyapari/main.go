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

	"vyapari/internal/backend"
	"vyapari/internal/backend/memory"
	"vyapari/internal/backend/rest"
	"vyapari/internal/config"
	apphttp "vyapari/internal/http"
	"vyapari/internal/store"
)

func main() {
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var (
		expSrc backend.ExpenseSource
		ordSrc backend.OrderSource
	)

	switch cfg.DataBackend {
	case "rest":
		cli, err := rest.New(&http.Client{}, cfg.BackendBaseURL, cfg.BackendTimeout)
		if err != nil {
			logger.Error("Failed to initialize REST backend", "error", err, "backend", cfg.DataBackend)
			os.Exit(1)
		}
		expSrc, ordSrc = cli, cli
		logger.Info("Initialized REST backend", "backend", cfg.DataBackend, "base_url", cfg.BackendBaseURL)
	default:
		mem := memory.New()
		expSrc, ordSrc = mem, mem
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
	}

	expenses := store.NewExpenseStore(expSrc, cfg.RefreshTTL)
	orders := store.NewOrderStore(ordSrc, cfg.RefreshTTL)

	srv := apphttp.NewServer(":"+cfg.Port, expenses, orders, cfg.WeekStart, cfg.WhatsAppDomain)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting vyapari server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
