// Package main serves the claims API behind API Gateway HTTP API.
package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	_ "github.com/joho/godotenv/autoload"

	"claimsapi/internal/app"
	"claimsapi/internal/config"
	"claimsapi/internal/logger"
	"claimsapi/internal/otel"
)

func main() {
	cfg := config.Load()

	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	log := logger.New(os.Stdout, cfg.LogLevel, loc)

	ctx := context.Background()
	if _, err := otel.Init(ctx, log); err != nil {
		log.Error("tracing_init_failed", "error", err.Error())
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}

	handler, err := a.Lambda()
	if err != nil {
		log.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}
	lambda.Start(handler)
}
