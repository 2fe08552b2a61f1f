package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/league-api/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func floatPtr(f float64) *float64 {
	return &f
}

type fakeSessionRepo struct {
	sessions map[uint]domain.Session
	findAll  []domain.Session

	applyErr      error
	activateIDs   []uint
	deactivateIDs []uint
	applyCalls    int

	deactivated []uint
	deleted     []uint
}

func (r *fakeSessionRepo) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	session.ID = uint(len(r.sessions) + 1)
	if r.sessions == nil {
		r.sessions = make(map[uint]domain.Session)
	}
	r.sessions[session.ID] = session

	return session, nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uint) (domain.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context) ([]domain.Session, error) {
	return r.findAll, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session domain.Session) (domain.Session, error) {
	r.sessions[session.ID] = session

	return session, nil
}

func (r *fakeSessionRepo) ApplyLifecycleChanges(_ context.Context, activateIDs, deactivateIDs []uint) error {
	r.applyCalls++
	r.activateIDs = activateIDs
	r.deactivateIDs = deactivateIDs

	return r.applyErr
}

func (r *fakeSessionRepo) Deactivate(_ context.Context, id uint) error {
	r.deactivated = append(r.deactivated, id)

	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uint) error {
	r.deleted = append(r.deleted, id)

	return nil
}

type fakeRegistrationCounter struct {
	counts map[uint]int64
}

func (c *fakeRegistrationCounter) CountBySessionID(_ context.Context, sessionID uint) (int64, error) {
	return c.counts[sessionID], nil
}

type fakeSessionTeamRepo struct {
	deletedSessions []uint
}

func (r *fakeSessionTeamRepo) DeleteBySessionID(_ context.Context, sessionID uint) error {
	r.deletedSessions = append(r.deletedSessions, sessionID)

	return nil
}

func TestListSessionsPersistsLifecycleChangesInOneBatch(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	repo := &fakeSessionRepo{
		findAll: []domain.Session{
			{
				// Ended last week, still flagged active.
				ID:       1,
				IsActive: true,
				EndDate:  time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
			},
			{
				// Window opened yesterday, still flagged inactive.
				ID:                   2,
				IsActive:             false,
				EndDate:              time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
				RegistrationOpenDate: timePtr(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),
			},
			{
				// Nothing to do.
				ID:       3,
				IsActive: true,
				EndDate:  time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	svc := NewSessionService(repo, &fakeRegistrationCounter{}, &fakeSessionTeamRepo{}, clock)

	sessions, err := svc.ListSessions(context.Background())

	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.False(t, sessions[0].IsActive)
	assert.True(t, sessions[1].IsActive)
	assert.True(t, sessions[2].IsActive)

	assert.Equal(t, 1, repo.applyCalls)
	assert.Equal(t, []uint{2}, repo.activateIDs)
	assert.Equal(t, []uint{1}, repo.deactivateIDs)
}

func TestListSessionsSkipsWriteWhenNothingChanged(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	repo := &fakeSessionRepo{
		findAll: []domain.Session{
			{ID: 1, IsActive: true, EndDate: time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
		},
	}

	svc := NewSessionService(repo, &fakeRegistrationCounter{}, &fakeSessionTeamRepo{}, clock)

	_, err := svc.ListSessions(context.Background())

	require.NoError(t, err)
	assert.Zero(t, repo.applyCalls)
}

func TestListSessionsReturnsRecomputedFlagsWhenPersistFails(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	repo := &fakeSessionRepo{
		applyErr: errors.New("connection reset"),
		findAll: []domain.Session{
			{ID: 1, IsActive: true, EndDate: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)},
		},
	}

	svc := NewSessionService(repo, &fakeRegistrationCounter{}, &fakeSessionTeamRepo{}, clock)

	sessions, err := svc.ListSessions(context.Background())

	// The caller still gets the reconciled view; storage catches up on the
	// next listing.
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].IsActive)
}

func TestDeleteSessionHardDeletesWhenNoRegistrations(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	repo := &fakeSessionRepo{
		sessions: map[uint]domain.Session{7: {ID: 7}},
	}
	teams := &fakeSessionTeamRepo{}

	svc := NewSessionService(repo, &fakeRegistrationCounter{}, teams, clock)

	deleted, err := svc.DeleteSession(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []uint{7}, repo.deleted)
	// Teams created ahead of the draft go with the session.
	assert.Equal(t, []uint{7}, teams.deletedSessions)
	assert.Empty(t, repo.deactivated)
}

func TestDeleteSessionDeactivatesWhenRegistrationsExist(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	repo := &fakeSessionRepo{
		sessions: map[uint]domain.Session{7: {ID: 7, IsActive: true}},
	}
	counter := &fakeRegistrationCounter{counts: map[uint]int64{7: 3}}
	teams := &fakeSessionTeamRepo{}

	svc := NewSessionService(repo, counter, teams, clock)

	deleted, err := svc.DeleteSession(context.Background(), 7)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, []uint{7}, repo.deactivated)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, teams.deletedSessions)
}

func TestDeleteSessionUnknownID(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	svc := NewSessionService(&fakeSessionRepo{}, &fakeRegistrationCounter{}, &fakeSessionTeamRepo{}, clock)

	_, err := svc.DeleteSession(context.Background(), 99)

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEffectivePriceUsesClock(t *testing.T) {
	earlyBirdEnd := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{
		sessions: map[uint]domain.Session{
			1: {
				ID:               1,
				EarlyBirdPrice:   floatPtr(25),
				EarlyBirdEndDate: timePtr(earlyBirdEnd),
				RegularPrice:     floatPtr(40),
			},
		},
	}

	inWindow := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	svc := NewSessionService(repo, &fakeRegistrationCounter{}, &fakeSessionTeamRepo{}, inWindow)

	price, ok, err := svc.EffectivePrice(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 25.0, price)

	afterWindow := clockwork.NewFakeClockAt(time.Date(2026, 3, 21, 12, 0, 0, 0, time.UTC))
	svc = NewSessionService(repo, &fakeRegistrationCounter{}, &fakeSessionTeamRepo{}, afterWindow)

	price, ok, err = svc.EffectivePrice(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 40.0, price)
}
