package usecase

import (
	"context"
	"time"

	"hello-guru/internal/domain"
)

// initSession installs the persisted attributes as the session bag when the
// envelope opens a new session. A failed load answers with first-contact
// defaults and marks the invocation so the stored record is left untouched.
func (s *Skill) initSession(ctx context.Context, inv *Invocation) {
	if !inv.Envelope.IsNewSession() {
		return
	}
	inv.Logger.Debug("new session, loading persistent attributes")

	attrs, err := s.store.Load(ctx, inv.Envelope.UserID())
	if err != nil {
		inv.Logger.Warn("failed to load persistent attributes, continuing with defaults", "err", err)
		inv.loadFailed = true
		attrs = nil
	}

	if len(attrs) == 0 {
		attrs = domain.Attributes{
			domain.AttrLastIntent:       nil,
			domain.AttrLastSpeech:       nil,
			domain.AttrTotalLaunchCount: int64(0),
		}
	} else {
		inv.Logger.Debug("returning user, incrementing launch count")
		attrs.Set(domain.AttrTotalLaunchCount, attrs.Int(domain.AttrTotalLaunchCount)+1)
	}
	inv.Attributes = attrs
}

// persist stamps the last use time and overwrites the persistent record with
// the session bag. It runs after every dispatch.
func (s *Skill) persist(ctx context.Context, inv *Invocation) error {
	if inv.recordDeleted {
		inv.Logger.Debug("persistent record deleted, skipping save")
		return nil
	}
	if inv.loadFailed {
		inv.Logger.Warn("persistent attributes were not loaded, skipping save")
		return nil
	}
	inv.Attributes.Set(domain.AttrLastUseTimestamp, s.lastUse(inv.Envelope).UnixMilli())

	inv.Logger.Debug("saving persistent attributes")
	return s.store.Save(ctx, inv.Envelope.UserID(), inv.Attributes.Clone())
}

func (s *Skill) lastUse(env domain.RequestEnvelope) time.Time {
	if t, ok := env.RequestTime(); ok {
		return t
	}
	return s.now()
}
