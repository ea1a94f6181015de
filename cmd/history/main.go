package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"genki-chat/handler"
	"genki-chat/internal/repository"
	"genki-chat/internal/usecase"
)

func main() {
	ctx := context.Background()

	historyTable := mustEnv("HISTORY_TABLE")

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	historyStore, err := repository.NewHistoryStore(awsdynamodb.NewFromConfig(cfg), historyTable)
	if err != nil {
		slog.Error("failed to create history store", "err", err)
		os.Exit(1)
	}

	historyService, err := usecase.NewHistoryService(historyStore)
	if err != nil {
		slog.Error("failed to create history service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHistoryHandler(historyService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}
