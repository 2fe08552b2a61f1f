package repository

import (
	"context"
	"fmt"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository/dao"
)

var (
	ErrTeamNotFound   = dao.ErrTeamNotFound
	ErrTeamNameExists = dao.ErrTeamNameExists
	ErrPlayerNotFound = dao.ErrPlayerNotFound
	ErrPlayerExists   = dao.ErrPlayerExists
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]dao.Team, error)
	Update(ctx context.Context, team dao.Team) (dao.Team, error)
	Delete(ctx context.Context, id uint) error
	DeleteBySessionID(ctx context.Context, sessionID uint) error
	InsertPlayer(ctx context.Context, player dao.Player) (dao.Player, error)
	FindPlayerByID(ctx context.Context, id uint) (dao.Player, error)
	UpdatePlayerTeam(ctx context.Context, playerID, teamID uint) error
	DeletePlayer(ctx context.Context, id uint) error
	CountPlayersByTeamID(ctx context.Context, teamID uint) (int64, error)
	CountPlayersBySessionID(ctx context.Context, sessionID uint) (int64, error)
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, dao.Team{
		SessionID:  team.SessionID,
		Name:       team.Name,
		Color:      team.Color,
		CaptainID:  team.CaptainID,
		MaxPlayers: team.MaxPlayers,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) FindBySessionID(ctx context.Context, sessionID uint) ([]domain.Team, error) {
	found, err := r.dao.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySessionID -> %w", err)
	}

	teams := make([]domain.Team, 0, len(found))
	for _, t := range found {
		teams = append(teams, r.daoToDomain(t))
	}

	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, team domain.Team) (domain.Team, error) {
	updated, err := r.dao.Update(ctx, dao.Team{
		ID:         team.ID,
		Name:       team.Name,
		Color:      team.Color,
		CaptainID:  team.CaptainID,
		MaxPlayers: team.MaxPlayers,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TeamRepository) DeleteBySessionID(ctx context.Context, sessionID uint) error {
	if err := r.dao.DeleteBySessionID(ctx, sessionID); err != nil {
		return fmt.Errorf("r.dao.DeleteBySessionID -> %w", err)
	}

	return nil
}

func (r *TeamRepository) CreatePlayer(ctx context.Context, player domain.Player) (domain.Player, error) {
	created, err := r.dao.InsertPlayer(ctx, dao.Player{
		TeamID:         player.TeamID,
		RegistrationID: player.RegistrationID,
		UserID:         player.UserID,
		JerseyNumber:   player.JerseyNumber,
	})
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.InsertPlayer -> %w", err)
	}

	return r.playerDAOToDomain(created), nil
}

func (r *TeamRepository) FindPlayerByID(ctx context.Context, id uint) (domain.Player, error) {
	found, err := r.dao.FindPlayerByID(ctx, id)
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.FindPlayerByID -> %w", err)
	}

	return r.playerDAOToDomain(found), nil
}

func (r *TeamRepository) MovePlayer(ctx context.Context, playerID, teamID uint) error {
	if err := r.dao.UpdatePlayerTeam(ctx, playerID, teamID); err != nil {
		return fmt.Errorf("r.dao.UpdatePlayerTeam -> %w", err)
	}

	return nil
}

func (r *TeamRepository) DeletePlayer(ctx context.Context, id uint) error {
	if err := r.dao.DeletePlayer(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeletePlayer -> %w", err)
	}

	return nil
}

func (r *TeamRepository) CountPlayers(ctx context.Context, teamID uint) (int64, error) {
	count, err := r.dao.CountPlayersByTeamID(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountPlayersByTeamID -> %w", err)
	}

	return count, nil
}

func (r *TeamRepository) CountPlayersBySession(ctx context.Context, sessionID uint) (int64, error) {
	count, err := r.dao.CountPlayersBySessionID(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountPlayersBySessionID -> %w", err)
	}

	return count, nil
}

func (r *TeamRepository) daoToDomain(t dao.Team) domain.Team {
	team := domain.Team{
		ID:         t.ID,
		SessionID:  t.SessionID,
		Name:       t.Name,
		Color:      t.Color,
		CaptainID:  t.CaptainID,
		MaxPlayers: t.MaxPlayers,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	for _, p := range t.Players {
		team.Players = append(team.Players, r.playerDAOToDomain(p))
	}

	return team
}

func (r *TeamRepository) playerDAOToDomain(p dao.Player) domain.Player {
	return domain.Player{
		ID:             p.ID,
		TeamID:         p.TeamID,
		RegistrationID: p.RegistrationID,
		UserID:         p.UserID,
		JerseyNumber:   p.JerseyNumber,
		CreatedAt:      p.CreatedAt,
	}
}
