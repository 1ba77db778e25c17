package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"hello-guru/internal/domain"
	"hello-guru/internal/usecase"
)

type SkillUseCase interface {
	Handle(ctx context.Context, env domain.RequestEnvelope) (usecase.Output, error)
}

// Handler adapts the voice platform's JSON envelope to the skill use case.
type Handler struct {
	skill  SkillUseCase
	logger *slog.Logger
}

func NewHandler(skill SkillUseCase, logger *slog.Logger) (*Handler, error) {
	if skill == nil {
		return nil, errors.New("handler: skill must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{skill: skill, logger: logger}, nil
}

// Handle is the Lambda entry point. Errors are returned to the runtime so the
// platform sees a failed invocation rather than a malformed response.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (domain.ResponseEnvelope, error) {
	var env domain.RequestEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Error("invalid request envelope", "err", err)
		return domain.ResponseEnvelope{}, fmt.Errorf("handler: decode envelope: %w", err)
	}

	logger := h.logger.With("request_id", correlationID(env))
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With("aws_request_id", lc.AwsRequestID)
	}

	out, err := h.skill.Handle(ctx, env)
	if err != nil {
		var ucErr *usecase.Error
		if errors.As(err, &ucErr) {
			logger.Error("skill request failed", "code", ucErr.Code, "reason", ucErr.Reason, "err", ucErr.Err)
		} else {
			logger.Error("skill request failed", "err", err)
		}
		return domain.ResponseEnvelope{}, err
	}

	logger.Debug("skill request handled",
		"request_type", env.Request.Type,
		"should_end_session", out.Response.ShouldEndSession,
	)
	return domain.NewResponseEnvelope(out.Response, out.SessionAttributes), nil
}

func correlationID(env domain.RequestEnvelope) string {
	if env.Request.RequestID != "" {
		return env.Request.RequestID
	}
	return newUUID()
}

var newUUID = func() string {
	return uuid.NewString()
}
