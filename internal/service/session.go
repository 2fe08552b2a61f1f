package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository"
)

var ErrSessionNotFound = repository.ErrSessionNotFound

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByID(ctx context.Context, id uint) (domain.Session, error)
	FindAll(ctx context.Context) ([]domain.Session, error)
	Update(ctx context.Context, session domain.Session) (domain.Session, error)
	ApplyLifecycleChanges(ctx context.Context, activateIDs, deactivateIDs []uint) error
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type SessionRegistrationCounter interface {
	CountBySessionID(ctx context.Context, sessionID uint) (int64, error)
}

type SessionTeamRepository interface {
	DeleteBySessionID(ctx context.Context, sessionID uint) error
}

type SessionService struct {
	repo          SessionRepository
	registrations SessionRegistrationCounter
	teams         SessionTeamRepository
	clock         clockwork.Clock
}

func NewSessionService(repo SessionRepository, registrations SessionRegistrationCounter, teams SessionTeamRepository, clock clockwork.Clock) *SessionService {
	return &SessionService{
		repo:          repo,
		registrations: registrations,
		teams:         teams,
		clock:         clock,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SessionService) GetSession(ctx context.Context, id uint) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}

// ListSessions fetches every session and reconciles each IsActive flag
// against its date windows before returning. Lifecycle evaluation is
// pull-based: there is no background scheduler, so staleness is bounded by
// how often someone lists sessions.
//
// Flag flips are persisted in one batched write. If that write fails the
// response still carries the recomputed flags and the next listing retries
// the reconciliation; until then storage lags what clients saw. That gap is
// a documented property of the design, not an error surfaced to the caller.
func (s *SessionService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	now := s.clock.Now().UTC()

	var activateIDs, deactivateIDs []uint
	for i := range sessions {
		if !sessions[i].EvaluateLifecycle(now) {
			continue
		}
		if sessions[i].IsActive {
			activateIDs = append(activateIDs, sessions[i].ID)
		} else {
			deactivateIDs = append(deactivateIDs, sessions[i].ID)
		}
	}

	if len(activateIDs) > 0 || len(deactivateIDs) > 0 {
		if err := s.repo.ApplyLifecycleChanges(ctx, activateIDs, deactivateIDs); err != nil {
			zap.L().Warn("session lifecycle flags not persisted; response is ahead of storage until the next listing",
				zap.Uints("activate", activateIDs),
				zap.Uints("deactivate", deactivateIDs),
				zap.Error(err))
		}
	}

	return sessions, nil
}

func (s *SessionService) UpdateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	updated, err := s.repo.Update(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteSession hard-deletes only sessions nobody has registered for, taking
// the session's teams and their roster slots with it. A session with
// registrations is deactivated instead, keeping the row, its registrations
// and its teams intact.
func (s *SessionService) DeleteSession(ctx context.Context, id uint) (deleted bool, err error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	count, err := s.registrations.CountBySessionID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("s.registrations.CountBySessionID -> %w", err)
	}

	if count > 0 {
		if err := s.repo.Deactivate(ctx, id); err != nil {
			return false, fmt.Errorf("s.repo.Deactivate -> %w", err)
		}
		return false, nil
	}

	// Teams go first so a failure leaves the session row in place.
	if err := s.teams.DeleteBySessionID(ctx, id); err != nil {
		return false, fmt.Errorf("s.teams.DeleteBySessionID -> %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return true, nil
}

// EffectivePrice resolves the session's own pricing fields; the legacy flat
// fee is part of the window, so a session created before the early-bird
// columns existed still prices correctly.
func (s *SessionService) EffectivePrice(ctx context.Context, id uint) (float64, bool, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	price, ok := domain.ResolvePrice(s.clock.Now().UTC(), session.Pricing())

	return price, ok, nil
}
