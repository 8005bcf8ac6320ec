// Package main is the entry point for the emotion analyzer Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pricofy/emotion-analyzer/internal/app"
	"github.com/pricofy/emotion-analyzer/internal/config"
	"github.com/pricofy/emotion-analyzer/internal/handler"
	"github.com/pricofy/emotion-analyzer/internal/logging"
)

// handlers builds the NLU and database clients once per warm container.
var handlers = app.NewLazy(app.FromEnv)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "production"
	}
	config.LoadEnv(env)
	logging.InitLogger(env)

	lambda.Start(handleRequest)
}

func handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup)
	}

	h, err := handlers.Get(ctx)
	if err != nil {
		return handler.ProxyResponse(handler.Fail(slog.Default(), err)), nil
	}

	return h.HandleEvent(ctx, event), nil
}
