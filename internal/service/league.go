package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository"
)

var ErrLeagueNotFound = repository.ErrLeagueNotFound

type LeagueRepository interface {
	Create(ctx context.Context, league domain.League) (domain.League, error)
	FindByID(ctx context.Context, id uint) (domain.League, error)
	FindAll(ctx context.Context) ([]domain.League, error)
	Update(ctx context.Context, league domain.League) (domain.League, error)
	Delete(ctx context.Context, id uint) error
}

type LeagueService struct {
	repo  LeagueRepository
	clock clockwork.Clock
}

func NewLeagueService(repo LeagueRepository, clock clockwork.Clock) *LeagueService {
	return &LeagueService{
		repo:  repo,
		clock: clock,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, league domain.League) (domain.League, error) {
	created, err := s.repo.Create(ctx, league)
	if err != nil {
		return domain.League{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, id uint) (domain.League, error) {
	league, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.League{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return league, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]domain.League, error) {
	leagues, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) UpdateLeague(ctx context.Context, league domain.League) (domain.League, error) {
	updated, err := s.repo.Update(ctx, league)
	if err != nil {
		return domain.League{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *LeagueService) DeleteLeague(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// EffectivePrice resolves the league's current price. The second return is
// false when no pricing field is populated and the caller shows "TBA".
func (s *LeagueService) EffectivePrice(ctx context.Context, id uint) (float64, bool, error) {
	league, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	price, ok := domain.ResolvePrice(s.clock.Now().UTC(), league.Pricing())

	return price, ok, nil
}
