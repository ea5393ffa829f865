package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"claimsapi/internal/app"
	"claimsapi/internal/config"
	"claimsapi/internal/logger"
	"claimsapi/internal/otel"
)

// @title Claims API
// @version 1.0
// @description Insurance claim records with AI-generated summaries and documents.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	log := logger.New(os.Stdout, cfg.LogLevel, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Error("tracing_init_failed", "error", err.Error())
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}

	server, err := a.HTTP()
	if err != nil {
		log.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown_started")
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("http_shutdown_failed", "error", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", "addr", addr)
	if err := server.Listen(addr); err != nil {
		log.Error("server_failed", "error", err.Error())
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracing_shutdown_failed", "error", err.Error())
	}
	if err := a.Close(); err != nil {
		log.Error("store_close_failed", "error", err.Error())
	}
}
