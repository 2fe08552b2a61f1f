package repository

import (
	"context"
	"fmt"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository/dao"
)

var ErrLeagueNotFound = dao.ErrLeagueNotFound

type LeagueDAO interface {
	Insert(ctx context.Context, league dao.League) (dao.League, error)
	FindByID(ctx context.Context, id uint) (dao.League, error)
	FindAll(ctx context.Context) ([]dao.League, error)
	Update(ctx context.Context, league dao.League) (dao.League, error)
	Delete(ctx context.Context, id uint) error
}

type LeagueRepository struct {
	dao LeagueDAO
}

func NewLeagueRepository(dao LeagueDAO) *LeagueRepository {
	return &LeagueRepository{
		dao: dao,
	}
}

func (r *LeagueRepository) Create(ctx context.Context, league domain.League) (domain.League, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(league))
	if err != nil {
		return domain.League{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *LeagueRepository) FindByID(ctx context.Context, id uint) (domain.League, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.League{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *LeagueRepository) FindAll(ctx context.Context) ([]domain.League, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	leagues := make([]domain.League, 0, len(found))
	for _, l := range found {
		leagues = append(leagues, r.daoToDomain(l))
	}

	return leagues, nil
}

func (r *LeagueRepository) Update(ctx context.Context, league domain.League) (domain.League, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(league))
	if err != nil {
		return domain.League{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *LeagueRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *LeagueRepository) domainToDAO(l domain.League) dao.League {
	return dao.League{
		ID:                    l.ID,
		Name:                  l.Name,
		Description:           l.Description,
		StartDate:             l.StartDate,
		EarlyBirdPrice:        l.EarlyBirdPrice,
		EarlyBirdEndDate:      l.EarlyBirdEndDate,
		RegularPrice:          l.RegularPrice,
		RegistrationOpenDate:  l.RegistrationOpenDate,
		RegistrationCloseDate: l.RegistrationCloseDate,
	}
}

func (r *LeagueRepository) daoToDomain(l dao.League) domain.League {
	return domain.League{
		ID:                    l.ID,
		Name:                  l.Name,
		Description:           l.Description,
		StartDate:             l.StartDate,
		EarlyBirdPrice:        l.EarlyBirdPrice,
		EarlyBirdEndDate:      l.EarlyBirdEndDate,
		RegularPrice:          l.RegularPrice,
		RegistrationOpenDate:  l.RegistrationOpenDate,
		RegistrationCloseDate: l.RegistrationCloseDate,
		CreatedAt:             l.CreatedAt,
		UpdatedAt:             l.UpdatedAt,
	}
}
