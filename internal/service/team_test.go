package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/league-api/internal/domain"
)

type fakeTeamRepo struct {
	teams   map[uint]domain.Team
	players map[uint]domain.Player
	nextID  uint
}

func newFakeTeamRepo(teams ...domain.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{
		teams:   make(map[uint]domain.Team),
		players: make(map[uint]domain.Player),
	}
	for _, team := range teams {
		r.teams[team.ID] = team
	}

	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, team domain.Team) (domain.Team, error) {
	r.nextID++
	team.ID = r.nextID
	r.teams[team.ID] = team

	return team, nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id uint) (domain.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return domain.Team{}, ErrTeamNotFound
	}

	return team, nil
}

func (r *fakeTeamRepo) FindBySessionID(_ context.Context, sessionID uint) ([]domain.Team, error) {
	var out []domain.Team
	for _, team := range r.teams {
		if team.SessionID == sessionID {
			out = append(out, team)
		}
	}

	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team domain.Team) (domain.Team, error) {
	r.teams[team.ID] = team

	return team, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uint) error {
	delete(r.teams, id)

	return nil
}

func (r *fakeTeamRepo) CreatePlayer(_ context.Context, player domain.Player) (domain.Player, error) {
	for _, existing := range r.players {
		if existing.RegistrationID == player.RegistrationID {
			return domain.Player{}, ErrPlayerExists
		}
	}

	r.nextID++
	player.ID = r.nextID
	r.players[player.ID] = player

	return player, nil
}

func (r *fakeTeamRepo) FindPlayerByID(_ context.Context, id uint) (domain.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return domain.Player{}, ErrPlayerNotFound
	}

	return player, nil
}

func (r *fakeTeamRepo) MovePlayer(_ context.Context, playerID, teamID uint) error {
	player, ok := r.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	player.TeamID = teamID
	r.players[playerID] = player

	return nil
}

func (r *fakeTeamRepo) DeletePlayer(_ context.Context, id uint) error {
	delete(r.players, id)

	return nil
}

func (r *fakeTeamRepo) CountPlayers(_ context.Context, teamID uint) (int64, error) {
	var count int64
	for _, player := range r.players {
		if player.TeamID == teamID {
			count++
		}
	}

	return count, nil
}

type fakeRegistrationFinder struct {
	registrations map[uint]domain.SessionRegistration
}

func (f *fakeRegistrationFinder) FindByID(_ context.Context, id uint) (domain.SessionRegistration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.SessionRegistration{}, ErrRegistrationNotFound
	}

	return registration, nil
}

type capturePublisher struct {
	events []domain.DraftEvent
}

func (p *capturePublisher) Publish(event domain.DraftEvent) {
	p.events = append(p.events, event)
}

func uintPtr(v uint) *uint {
	return &v
}

func newTeamFixture() (*TeamService, *fakeTeamRepo, *capturePublisher, *fakeNotifier) {
	repo := newFakeTeamRepo(
		domain.Team{ID: 1, SessionID: 5, Name: "Ice Hawks", MaxPlayers: 2},
		domain.Team{ID: 2, SessionID: 5, Name: "Polar Kings", MaxPlayers: 2},
		domain.Team{ID: 3, SessionID: 9, Name: "Other Season", MaxPlayers: 2},
	)
	registrations := &fakeRegistrationFinder{
		registrations: map[uint]domain.SessionRegistration{
			100: {ID: 100, SessionID: 5, UserID: uintPtr(10)},
			101: {ID: 101, SessionID: 5},
			102: {ID: 102, SessionID: 5},
			200: {ID: 200, SessionID: 9},
		},
	}
	publisher := &capturePublisher{}
	notifier := &fakeNotifier{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	svc := NewTeamService(repo, registrations, notifier, publisher, clock)

	return svc, repo, publisher, notifier
}

func TestAssignPlayer(t *testing.T) {
	svc, _, publisher, notifier := newTeamFixture()

	player, err := svc.AssignPlayer(context.Background(), 1, 100, nil)

	require.NoError(t, err)
	assert.Equal(t, uint(1), player.TeamID)
	assert.Equal(t, uint(100), player.RegistrationID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.DraftAssigned, publisher.events[0].Type)
	assert.Equal(t, uint(5), publisher.events[0].SessionID)

	assert.Len(t, notifier.messages[10], 1)
}

func TestAssignPlayerWithoutAccountSkipsNotification(t *testing.T) {
	svc, _, _, notifier := newTeamFixture()

	_, err := svc.AssignPlayer(context.Background(), 1, 101, nil)

	require.NoError(t, err)
	assert.Empty(t, notifier.messages)
}

func TestAssignPlayerRejectsWrongSession(t *testing.T) {
	svc, _, publisher, _ := newTeamFixture()

	_, err := svc.AssignPlayer(context.Background(), 1, 200, nil)

	assert.ErrorIs(t, err, ErrWrongSession)
	assert.Empty(t, publisher.events)
}

func TestAssignPlayerRejectsFullRoster(t *testing.T) {
	svc, _, _, _ := newTeamFixture()

	_, err := svc.AssignPlayer(context.Background(), 1, 100, nil)
	require.NoError(t, err)
	_, err = svc.AssignPlayer(context.Background(), 1, 101, nil)
	require.NoError(t, err)

	_, err = svc.AssignPlayer(context.Background(), 1, 102, nil)

	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestAssignPlayerRejectsDoubleDraft(t *testing.T) {
	svc, _, _, _ := newTeamFixture()

	_, err := svc.AssignPlayer(context.Background(), 1, 100, nil)
	require.NoError(t, err)

	_, err = svc.AssignPlayer(context.Background(), 2, 100, nil)

	assert.ErrorIs(t, err, ErrPlayerExists)
}

func TestMovePlayer(t *testing.T) {
	svc, repo, publisher, _ := newTeamFixture()

	player, err := svc.AssignPlayer(context.Background(), 1, 100, nil)
	require.NoError(t, err)

	moved, err := svc.MovePlayer(context.Background(), player.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, uint(2), moved.TeamID)

	stored, err := repo.FindPlayerByID(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), stored.TeamID)

	require.Len(t, publisher.events, 2)
	event := publisher.events[1]
	assert.Equal(t, domain.DraftMoved, event.Type)
	require.NotNil(t, event.FromTeamID)
	assert.Equal(t, uint(1), *event.FromTeamID)
	assert.Equal(t, uint(2), event.TeamID)
}

func TestMovePlayerRejectsCrossSession(t *testing.T) {
	svc, _, _, _ := newTeamFixture()

	player, err := svc.AssignPlayer(context.Background(), 1, 100, nil)
	require.NoError(t, err)

	_, err = svc.MovePlayer(context.Background(), player.ID, 3)

	assert.ErrorIs(t, err, ErrCrossSessionMove)
}

func TestUnassignPlayer(t *testing.T) {
	svc, repo, publisher, _ := newTeamFixture()

	player, err := svc.AssignPlayer(context.Background(), 1, 100, nil)
	require.NoError(t, err)

	require.NoError(t, svc.UnassignPlayer(context.Background(), player.ID))

	_, err = repo.FindPlayerByID(context.Background(), player.ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, domain.DraftUnassigned, publisher.events[1].Type)

	// The registration is free to be drafted again.
	_, err = svc.AssignPlayer(context.Background(), 2, 100, nil)
	assert.NoError(t, err)
}
