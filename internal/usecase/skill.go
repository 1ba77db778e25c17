package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hello-guru/internal/domain"
)

// AttributeStore is the persistent attribute bridge used by the lifecycle stages.
type AttributeStore interface {
	Load(ctx context.Context, userID string) (domain.Attributes, error)
	Save(ctx context.Context, userID string, attrs domain.Attributes) error
	Delete(ctx context.Context, userID string) error
}

// Invocation is the per-request context passed to every handler. It owns the
// session attribute bag for the duration of one request.
type Invocation struct {
	Envelope   domain.RequestEnvelope
	Attributes domain.Attributes
	Logger     *slog.Logger

	// recordDeleted is set when the persistent record was removed during
	// dispatch; the flush stage must not recreate it.
	recordDeleted bool
	// loadFailed is set when the stored record could not be read. The bag
	// then holds defaults that must never overwrite the stored record.
	loadFailed bool
}

// RequestHandler is one entry of the ordered handler set.
type RequestHandler interface {
	CanHandle(inv *Invocation) bool
	Handle(ctx context.Context, inv *Invocation) (domain.Response, error)
}

// Options configures a Skill. Zero values fall back to defaults.
type Options struct {
	SkillName string
	// SkillID, when set, rejects envelopes addressed to other applications.
	SkillID string
	Logger  *slog.Logger
	Now     func() time.Time
}

// Output is the result of one invocation.
type Output struct {
	Response          domain.Response
	SessionAttributes domain.Attributes
}

// Skill runs the pre-dispatch, dispatch and post-dispatch stages for each
// request envelope.
type Skill struct {
	store    AttributeStore
	handlers []RequestHandler
	msgs     messages
	skillID  string
	logger   *slog.Logger
	now      func() time.Time
}

func NewSkill(store AttributeStore, opts Options) (*Skill, error) {
	if store == nil {
		return nil, errors.New("usecase: attribute store must not be nil")
	}
	name := strings.TrimSpace(opts.SkillName)
	if name == "" {
		name = DefaultSkillName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Skill{
		store:   store,
		msgs:    newMessages(name),
		skillID: strings.TrimSpace(opts.SkillID),
		logger:  logger,
		now:     now,
	}
	s.handlers = s.defaultHandlers()
	return s, nil
}

// Handle processes one envelope. Handler failures are answered with the
// apology response; only a failed attribute save is returned as an error.
func (s *Skill) Handle(ctx context.Context, env domain.RequestEnvelope) (Output, error) {
	if s.skillID != "" && env.ApplicationID() != s.skillID {
		return Output{}, newError(ErrorInvalidInput, "skill_id_mismatch", nil)
	}
	if env.UserID() == "" {
		return Output{}, newError(ErrorInvalidInput, "missing_user_id", nil)
	}

	inv := &Invocation{
		Envelope:   env,
		Attributes: sessionAttributes(env),
		Logger: s.logger.With(
			"request_type", env.Request.Type,
			"intent", env.IntentName(),
		),
	}

	s.initSession(ctx, inv)
	resp := s.dispatch(ctx, inv)
	if err := s.persist(ctx, inv); err != nil {
		return Output{}, newError(ErrorInternal, "dynamodb_save_error", err)
	}

	return Output{
		Response:          resp,
		SessionAttributes: inv.Attributes.Clone(),
	}, nil
}

// dispatch runs the first handler whose predicate matches. Errors, panics and
// unmatched requests all end in the apology response.
func (s *Skill) dispatch(ctx context.Context, inv *Invocation) (resp domain.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = s.recoverWith(inv, newError(ErrorHandler, "handler_panic", fmt.Errorf("%v", r)))
		}
	}()

	for _, h := range s.handlers {
		if !h.CanHandle(inv) {
			continue
		}
		inv.Logger.Debug("dispatching request", "handler", fmt.Sprint(h))
		out, err := h.Handle(ctx, inv)
		if err != nil {
			return s.recoverWith(inv, err)
		}
		return out
	}
	return s.recoverWith(inv, newError(ErrorHandler, "no_matching_handler", nil))
}

func (s *Skill) recoverWith(inv *Invocation, err error) domain.Response {
	inv.Logger.Error("error handled", "err", err)
	return domain.Response{Speech: s.msgs.apology, OmitEndSession: true}
}

func sessionAttributes(env domain.RequestEnvelope) domain.Attributes {
	if env.Session == nil || env.Session.New || len(env.Session.Attributes) == 0 {
		return domain.Attributes{}
	}
	return domain.NormalizeAttributes(env.Session.Attributes)
}
