package repository

import (
	"context"
	"fmt"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindByID(ctx context.Context, id uint) (dao.Session, error)
	FindAll(ctx context.Context) ([]dao.Session, error)
	Update(ctx context.Context, session dao.Session) (dao.Session, error)
	ApplyLifecycleChanges(ctx context.Context, activateIDs, deactivateIDs []uint) error
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(session))
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]domain.Session, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	sessions := make([]domain.Session, 0, len(found))
	for _, s := range found {
		sessions = append(sessions, r.daoToDomain(s))
	}

	return sessions, nil
}

func (r *SessionRepository) Update(ctx context.Context, session domain.Session) (domain.Session, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(session))
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SessionRepository) ApplyLifecycleChanges(ctx context.Context, activateIDs, deactivateIDs []uint) error {
	if err := r.dao.ApplyLifecycleChanges(ctx, activateIDs, deactivateIDs); err != nil {
		return fmt.Errorf("r.dao.ApplyLifecycleChanges -> %w", err)
	}

	return nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SessionRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *SessionRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.dao.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func (r *SessionRepository) domainToDAO(s domain.Session) dao.Session {
	return dao.Session{
		ID:                    s.ID,
		Name:                  s.Name,
		Description:           s.Description,
		StartDate:             s.StartDate,
		EndDate:               s.EndDate,
		Fee:                   s.Fee,
		IsActive:              s.IsActive,
		MaxPlayers:            s.MaxPlayers,
		RegistrationOpenDate:  s.RegistrationOpenDate,
		RegistrationCloseDate: s.RegistrationCloseDate,
		EarlyBirdPrice:        s.EarlyBirdPrice,
		EarlyBirdEndDate:      s.EarlyBirdEndDate,
		RegularPrice:          s.RegularPrice,
		LeagueID:              s.LeagueID,
	}
}

func (r *SessionRepository) daoToDomain(s dao.Session) domain.Session {
	session := domain.Session{
		ID:                    s.ID,
		Name:                  s.Name,
		Description:           s.Description,
		StartDate:             s.StartDate,
		EndDate:               s.EndDate,
		Fee:                   s.Fee,
		IsActive:              s.IsActive,
		MaxPlayers:            s.MaxPlayers,
		RegistrationOpenDate:  s.RegistrationOpenDate,
		RegistrationCloseDate: s.RegistrationCloseDate,
		EarlyBirdPrice:        s.EarlyBirdPrice,
		EarlyBirdEndDate:      s.EarlyBirdEndDate,
		RegularPrice:          s.RegularPrice,
		LeagueID:              s.LeagueID,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	if s.League != nil {
		league := domain.League{
			ID:                    s.League.ID,
			Name:                  s.League.Name,
			Description:           s.League.Description,
			StartDate:             s.League.StartDate,
			EarlyBirdPrice:        s.League.EarlyBirdPrice,
			EarlyBirdEndDate:      s.League.EarlyBirdEndDate,
			RegularPrice:          s.League.RegularPrice,
			RegistrationOpenDate:  s.League.RegistrationOpenDate,
			RegistrationCloseDate: s.League.RegistrationCloseDate,
			CreatedAt:             s.League.CreatedAt,
			UpdatedAt:             s.League.UpdatedAt,
		}
		session.League = &league
	}

	return session
}
