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

	profileTable := mustEnv("PROFILE_TABLE")

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	profileStore, err := repository.NewProfileStore(awsdynamodb.NewFromConfig(cfg), profileTable)
	if err != nil {
		slog.Error("failed to create profile store", "err", err)
		os.Exit(1)
	}

	profileService, err := usecase.NewProfileService(profileStore)
	if err != nil {
		slog.Error("failed to create profile service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewProfileHandler(profileService)
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
