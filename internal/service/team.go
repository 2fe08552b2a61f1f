package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository"
)

var (
	ErrTeamNotFound     = repository.ErrTeamNotFound
	ErrTeamNameExists   = repository.ErrTeamNameExists
	ErrPlayerNotFound   = repository.ErrPlayerNotFound
	ErrPlayerExists     = repository.ErrPlayerExists
	ErrTeamFull         = errors.New("team roster is full")
	ErrWrongSession     = errors.New("registration does not belong to the team's session")
	ErrCrossSessionMove = errors.New("cannot move player to a team in another session")
)

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]domain.Team, error)
	Update(ctx context.Context, team domain.Team) (domain.Team, error)
	Delete(ctx context.Context, id uint) error
	CreatePlayer(ctx context.Context, player domain.Player) (domain.Player, error)
	FindPlayerByID(ctx context.Context, id uint) (domain.Player, error)
	MovePlayer(ctx context.Context, playerID, teamID uint) error
	DeletePlayer(ctx context.Context, id uint) error
	CountPlayers(ctx context.Context, teamID uint) (int64, error)
}

type TeamRegistrationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.SessionRegistration, error)
}

// DraftPublisher fans a roster change out to connected draft boards. A no-op
// implementation is fine when nobody is watching.
type DraftPublisher interface {
	Publish(event domain.DraftEvent)
}

type TeamService struct {
	repo          TeamRepository
	registrations TeamRegistrationRepository
	notifier      RegistrationNotifier
	publisher     DraftPublisher
	clock         clockwork.Clock
}

func NewTeamService(
	repo TeamRepository,
	registrations TeamRegistrationRepository,
	notifier RegistrationNotifier,
	publisher DraftPublisher,
	clock clockwork.Clock,
) *TeamService {
	return &TeamService{
		repo:          repo,
		registrations: registrations,
		notifier:      notifier,
		publisher:     publisher,
		clock:         clock,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := s.repo.Create(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (domain.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context, sessionID uint) ([]domain.Team, error) {
	teams, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySessionID -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	updated, err := s.repo.Update(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// AssignPlayer drafts a registration onto a team. The registration must
// belong to the team's session, the roster must have room, and a
// registration can only occupy one slot (unique index backs this one up,
// unlike the self-registration duplicate check).
func (s *TeamService) AssignPlayer(ctx context.Context, teamID, registrationID uint, jerseyNumber *int) (domain.Player, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	registration, err := s.registrations.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.registrations.FindByID -> %w", err)
	}
	if registration.SessionID != team.SessionID {
		return domain.Player{}, ErrWrongSession
	}

	if team.MaxPlayers > 0 {
		count, err := s.repo.CountPlayers(ctx, teamID)
		if err != nil {
			return domain.Player{}, fmt.Errorf("s.repo.CountPlayers -> %w", err)
		}
		if count >= int64(team.MaxPlayers) {
			return domain.Player{}, ErrTeamFull
		}
	}

	player, err := s.repo.CreatePlayer(ctx, domain.Player{
		TeamID:         teamID,
		RegistrationID: registrationID,
		UserID:         registration.UserID,
		JerseyNumber:   jerseyNumber,
	})
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.CreatePlayer -> %w", err)
	}

	s.publisher.Publish(domain.DraftEvent{
		Type:           domain.DraftAssigned,
		SessionID:      team.SessionID,
		TeamID:         teamID,
		PlayerID:       player.ID,
		RegistrationID: registrationID,
		At:             s.clock.Now().UTC(),
	})

	if registration.UserID != nil {
		s.notifier.Notify(ctx, *registration.UserID, fmt.Sprintf("You have been drafted to %s.", team.Name))
	}

	return player, nil
}

// MovePlayer reassigns a drafted player to another team in the same session.
func (s *TeamService) MovePlayer(ctx context.Context, playerID, toTeamID uint) (domain.Player, error) {
	player, err := s.repo.FindPlayerByID(ctx, playerID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.FindPlayerByID -> %w", err)
	}

	fromTeam, err := s.repo.FindByID(ctx, player.TeamID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	toTeam, err := s.repo.FindByID(ctx, toTeamID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if toTeam.SessionID != fromTeam.SessionID {
		return domain.Player{}, ErrCrossSessionMove
	}

	if toTeam.MaxPlayers > 0 {
		count, err := s.repo.CountPlayers(ctx, toTeamID)
		if err != nil {
			return domain.Player{}, fmt.Errorf("s.repo.CountPlayers -> %w", err)
		}
		if count >= int64(toTeam.MaxPlayers) {
			return domain.Player{}, ErrTeamFull
		}
	}

	if err := s.repo.MovePlayer(ctx, playerID, toTeamID); err != nil {
		return domain.Player{}, fmt.Errorf("s.repo.MovePlayer -> %w", err)
	}

	fromID := fromTeam.ID
	player.TeamID = toTeamID
	s.publisher.Publish(domain.DraftEvent{
		Type:           domain.DraftMoved,
		SessionID:      toTeam.SessionID,
		TeamID:         toTeamID,
		FromTeamID:     &fromID,
		PlayerID:       player.ID,
		RegistrationID: player.RegistrationID,
		At:             s.clock.Now().UTC(),
	})

	return player, nil
}

// UnassignPlayer removes a roster slot; the registration returns to the
// undrafted pool.
func (s *TeamService) UnassignPlayer(ctx context.Context, playerID uint) error {
	player, err := s.repo.FindPlayerByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("s.repo.FindPlayerByID -> %w", err)
	}

	team, err := s.repo.FindByID(ctx, player.TeamID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.DeletePlayer(ctx, playerID); err != nil {
		return fmt.Errorf("s.repo.DeletePlayer -> %w", err)
	}

	s.publisher.Publish(domain.DraftEvent{
		Type:           domain.DraftUnassigned,
		SessionID:      team.SessionID,
		TeamID:         team.ID,
		PlayerID:       player.ID,
		RegistrationID: player.RegistrationID,
		At:             s.clock.Now().UTC(),
	})

	return nil
}
