package service

import (
	"context"
	"fmt"

	"github.com/rinkside/league-api/internal/domain"
)

type DashboardSessionRepository interface {
	FindAll(ctx context.Context) ([]domain.Session, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type DashboardRegistrationRepository interface {
	Count(ctx context.Context) (int64, error)
	CountBySessionID(ctx context.Context, sessionID uint) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type DashboardTeamRepository interface {
	CountPlayersBySession(ctx context.Context, sessionID uint) (int64, error)
}

type SessionStats struct {
	SessionID  uint   `json:"sessionId"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	Capacity   int    `json:"capacity"`
	Registered int64  `json:"registered"`
	Drafted    int64  `json:"drafted"`
}

type DashboardSummary struct {
	TotalSessions      int64          `json:"totalSessions"`
	ActiveSessions     int64          `json:"activeSessions"`
	TotalRegistrations int64          `json:"totalRegistrations"`
	TotalRevenue       float64        `json:"totalRevenue"`
	Sessions           []SessionStats `json:"sessions"`
}

type DashboardService struct {
	sessions      DashboardSessionRepository
	registrations DashboardRegistrationRepository
	teams         DashboardTeamRepository
}

func NewDashboardService(
	sessions DashboardSessionRepository,
	registrations DashboardRegistrationRepository,
	teams DashboardTeamRepository,
) *DashboardService {
	return &DashboardService{
		sessions:      sessions,
		registrations: registrations,
		teams:         teams,
	}
}

// Summary aggregates the admin dashboard figures. Revenue is the sum of
// successful payments, never a stored total.
func (s *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	totalSessions, err := s.sessions.Count(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("s.sessions.Count -> %w", err)
	}

	activeSessions, err := s.sessions.CountActive(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("s.sessions.CountActive -> %w", err)
	}

	totalRegistrations, err := s.registrations.Count(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("s.registrations.Count -> %w", err)
	}

	revenue, err := s.registrations.TotalRevenue(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("s.registrations.TotalRevenue -> %w", err)
	}

	sessions, err := s.sessions.FindAll(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("s.sessions.FindAll -> %w", err)
	}

	stats := make([]SessionStats, 0, len(sessions))
	for _, session := range sessions {
		registered, err := s.registrations.CountBySessionID(ctx, session.ID)
		if err != nil {
			return DashboardSummary{}, fmt.Errorf("s.registrations.CountBySessionID -> %w", err)
		}

		drafted, err := s.teams.CountPlayersBySession(ctx, session.ID)
		if err != nil {
			return DashboardSummary{}, fmt.Errorf("s.teams.CountPlayersBySession -> %w", err)
		}

		stats = append(stats, SessionStats{
			SessionID:  session.ID,
			Name:       session.Name,
			IsActive:   session.IsActive,
			Capacity:   session.MaxPlayers,
			Registered: registered,
			Drafted:    drafted,
		})
	}

	return DashboardSummary{
		TotalSessions:      totalSessions,
		ActiveSessions:     activeSessions,
		TotalRegistrations: totalRegistrations,
		TotalRevenue:       revenue,
		Sessions:           stats,
	}, nil
}
