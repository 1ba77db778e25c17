package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"hello-guru/handler"
	"hello-guru/internal/config"
	"hello-guru/internal/integrations/paramstore"
	"hello-guru/internal/repository"
	"hello-guru/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Debug)
	slog.SetDefault(logger)

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	if cfg.ParamPrefix != "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			logger.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		if err := cfg.ApplyParameters(ctx, ssmClient); err != nil {
			logger.Error("failed to load skill parameters", "err", err)
			os.Exit(1)
		}
	}

	// ---- Clients ----
	stateClient, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.StateTable)
	if err != nil {
		logger.Error("failed to create state client", "err", err)
		os.Exit(1)
	}
	if cfg.AutoCreateTable {
		if err := stateClient.EnsureTable(ctx); err != nil {
			logger.Error("failed to provision state table", "table", cfg.StateTable, "err", err)
			os.Exit(1)
		}
	}

	// ---- Handler ----
	skill, err := usecase.NewSkill(stateClient, usecase.Options{
		SkillName: cfg.SkillName,
		SkillID:   cfg.SkillID,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to create skill", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(skill, logger)
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
