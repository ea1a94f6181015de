package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"genki-chat/handler"
	"genki-chat/internal/integrations/bedrockagent"
	"genki-chat/internal/integrations/paramstore"
	"genki-chat/internal/repository"
	"genki-chat/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	historyTable := mustEnv("HISTORY_TABLE")
	profileTable := mustEnv("PROFILE_TABLE")
	paramPrefix := mustEnv("PARAM_PREFIX")
	bedrockRegion := os.Getenv("BEDROCK_REGION")
	agentTimeout := time.Duration(envInt("AGENT_TIMEOUT_SECONDS", 60)) * time.Second

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}
	bedrockCfg := cfg
	if bedrockRegion != "" {
		bedrockCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(bedrockRegion))
		if err != nil {
			slog.Error("failed to load Bedrock AWS config", "err", err)
			os.Exit(1)
		}
	}

	// ---- Clients ----
	params, err := paramstore.New(awsssm.NewFromConfig(cfg), paramPrefix)
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	agentID, err := params.Get(ctx, "agent-id")
	if err != nil {
		slog.Error("failed to read agent id", "err", err)
		os.Exit(1)
	}
	agentAliasID, err := params.Get(ctx, "agent-alias-id")
	if err != nil {
		slog.Error("failed to read agent alias id", "err", err)
		os.Exit(1)
	}

	dynamoClient := awsdynamodb.NewFromConfig(cfg)
	historyStore, err := repository.NewHistoryStore(dynamoClient, historyTable)
	if err != nil {
		slog.Error("failed to create history store", "err", err)
		os.Exit(1)
	}
	profileStore, err := repository.NewProfileStore(dynamoClient, profileTable)
	if err != nil {
		slog.Error("failed to create profile store", "err", err)
		os.Exit(1)
	}

	agent, err := bedrockagent.New(awsbedrock.NewFromConfig(bedrockCfg), agentID, agentAliasID)
	if err != nil {
		slog.Error("failed to create agent client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(historyStore, profileStore, agent, agentTimeout)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewChatHandler(chatService)
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

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
