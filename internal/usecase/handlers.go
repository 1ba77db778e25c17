package usecase

import (
	"context"

	"hello-guru/internal/domain"
)

// handler pairs a predicate with a responder.
type handler struct {
	name      string
	canHandle func(inv *Invocation) bool
	handle    func(ctx context.Context, inv *Invocation) (domain.Response, error)
}

func (h handler) String() string { return h.name }

func (h handler) CanHandle(inv *Invocation) bool { return h.canHandle(inv) }

func (h handler) Handle(ctx context.Context, inv *Invocation) (domain.Response, error) {
	return h.handle(ctx, inv)
}

// defaultHandlers returns the handler set in dispatch order.
func (s *Skill) defaultHandlers() []RequestHandler {
	return []RequestHandler{
		handler{name: "launch", canHandle: isLaunch, handle: s.handleLaunch},
		handler{name: "get_name", canHandle: intentIs(domain.IntentGetName), handle: s.handleGetName},
		handler{name: "help", canHandle: intentIs(domain.IntentHelp), handle: s.handleHelp},
		handler{name: "fallback", canHandle: intentIs(domain.IntentFallback), handle: s.handleFallback},
		handler{name: "exit", canHandle: intentIs(domain.IntentCancel, domain.IntentStop), handle: s.handleExit},
		handler{name: "system_exception", canHandle: requestIs(domain.RequestExceptionEncounter), handle: s.handleSystemException},
		handler{name: "session_ended", canHandle: requestIs(domain.RequestSessionEnded), handle: s.handleSessionEnded},
		handler{name: "skill_disabled", canHandle: requestIs(domain.RequestSkillDisabled), handle: s.handleSkillDisabled},
	}
}

func isLaunch(inv *Invocation) bool {
	return inv.Envelope.Request.Type == domain.RequestLaunch || inv.Envelope.IntentName() == domain.IntentSayHi
}

func intentIs(names ...string) func(*Invocation) bool {
	return func(inv *Invocation) bool {
		got := inv.Envelope.IntentName()
		for _, n := range names {
			if got == n {
				return true
			}
		}
		return false
	}
}

func requestIs(requestType string) func(*Invocation) bool {
	return func(inv *Invocation) bool {
		return inv.Envelope.Request.Type == requestType
	}
}

// lastIntentLabel is the request type for launches and the intent name otherwise.
func lastIntentLabel(env domain.RequestEnvelope) string {
	if name := env.IntentName(); name != "" {
		return name
	}
	return env.Request.Type
}

func (s *Skill) handleLaunch(_ context.Context, inv *Invocation) (domain.Response, error) {
	inv.Attributes.Set(domain.AttrLastIntent, lastIntentLabel(inv.Envelope))

	name, ok := inv.Attributes.String(domain.AttrName)
	if !ok {
		inv.Attributes.Set(domain.AttrLastSpeech, s.msgs.requestName)
		return domain.Response{
			Speech:   s.msgs.welcome,
			Reprompt: s.msgs.requestName,
		}, nil
	}

	speech := s.msgs.greeting(name)
	inv.Attributes.Set(domain.AttrLastSpeech, speech)
	return domain.Response{Speech: speech, Reprompt: speech}, nil
}

func (s *Skill) handleGetName(_ context.Context, inv *Invocation) (domain.Response, error) {
	spoken, ok := inv.Envelope.SlotValue(domain.SlotName)
	if !ok {
		return domain.Response{}, newError(ErrorHandler, "missing_name_slot", nil)
	}
	inv.Attributes.Set(domain.AttrLastIntent, domain.IntentGetName)
	inv.Logger.Debug("spoken name", "name", spoken)
	inv.Attributes.Set(domain.AttrName, spoken)

	speech := s.msgs.niceToMeet(spoken)
	inv.Attributes.Set(domain.AttrLastSpeech, speech)
	return domain.Response{
		Speech:   speech,
		Reprompt: s.msgs.anythingElse,
		Card:     &domain.Card{Title: s.msgs.skillName, Body: s.msgs.niceToMeetCard(spoken)},
	}, nil
}

func (s *Skill) handleHelp(_ context.Context, inv *Invocation) (domain.Response, error) {
	inv.Attributes.Set(domain.AttrLastSpeech, s.msgs.help)
	inv.Attributes.Set(domain.AttrLastIntent, domain.IntentHelp)
	return domain.Response{Speech: s.msgs.help, Reprompt: s.msgs.help}, nil
}

func (s *Skill) handleFallback(_ context.Context, inv *Invocation) (domain.Response, error) {
	inv.Attributes.Set(domain.AttrLastSpeech, s.msgs.unknown)
	return domain.Response{Speech: s.msgs.unknown, Reprompt: s.msgs.unknown}, nil
}

func (s *Skill) handleExit(_ context.Context, inv *Invocation) (domain.Response, error) {
	name, known := inv.Attributes.String(domain.AttrName)
	speech := s.msgs.farewell(name, known)

	inv.Attributes.Set(domain.AttrLastSpeech, speech)
	inv.Attributes.Set(domain.AttrLastIntent, inv.Envelope.IntentName())
	return domain.Response{Speech: speech, ShouldEndSession: true}, nil
}

func (s *Skill) handleSystemException(_ context.Context, inv *Invocation) (domain.Response, error) {
	req := inv.Envelope.Request
	attrs := []any{"reason", req.Reason}
	if req.Error != nil {
		attrs = append(attrs, "error_type", req.Error.Type, "error_message", req.Error.Message)
	}
	inv.Logger.Info("system exception encountered", attrs...)
	return domain.Response{ShouldEndSession: true}, nil
}

func (s *Skill) handleSessionEnded(_ context.Context, inv *Invocation) (domain.Response, error) {
	inv.Logger.Info("session ended", "reason", inv.Envelope.Request.Reason)
	return domain.Response{ShouldEndSession: true}, nil
}

func (s *Skill) handleSkillDisabled(ctx context.Context, inv *Invocation) (domain.Response, error) {
	inv.Logger.Debug("skill disabled, deleting persistent attributes")
	if err := s.store.Delete(ctx, inv.Envelope.UserID()); err != nil {
		return domain.Response{}, newError(ErrorInternal, "dynamodb_delete_error", err)
	}
	inv.recordDeleted = true
	inv.Attributes = domain.Attributes{}
	return domain.Response{}, nil
}
