package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestEvaluateLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		session     Session
		wantChanged bool
		wantActive  bool
	}{
		{
			name: "active session past end date is deactivated",
			session: Session{
				IsActive: true,
				EndDate:  time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC),
			},
			wantChanged: true,
			wantActive:  false,
		},
		{
			name: "active session ending today stays active",
			session: Session{
				IsActive: true,
				EndDate:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			},
			wantChanged: false,
			wantActive:  true,
		},
		{
			name: "active session past close timestamp is deactivated",
			session: Session{
				IsActive:              true,
				EndDate:               time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
				RegistrationCloseDate: timePtr(time.Date(2026, 3, 15, 11, 59, 59, 0, time.UTC)),
			},
			wantChanged: true,
			wantActive:  false,
		},
		{
			name: "active session with close timestamp later today stays active",
			session: Session{
				IsActive:              true,
				EndDate:               time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
				RegistrationCloseDate: timePtr(time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)),
			},
			wantChanged: false,
			wantActive:  true,
		},
		{
			name: "inactive session with open window is activated",
			session: Session{
				IsActive:             false,
				EndDate:              time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
				RegistrationOpenDate: timePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
			},
			wantChanged: true,
			wantActive:  true,
		},
		{
			name: "inactive session opening exactly now is activated",
			session: Session{
				IsActive:             false,
				EndDate:              time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
				RegistrationOpenDate: timePtr(now),
			},
			wantChanged: true,
			wantActive:  true,
		},
		{
			name: "inactive session whose window already closed stays inactive",
			session: Session{
				IsActive:              false,
				EndDate:               time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
				RegistrationOpenDate:  timePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
				RegistrationCloseDate: timePtr(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
			},
			wantChanged: false,
			wantActive:  false,
		},
		{
			name: "inactive session that already ended stays inactive",
			session: Session{
				IsActive:             false,
				EndDate:              time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				RegistrationOpenDate: timePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
			},
			wantChanged: false,
			wantActive:  false,
		},
		{
			name: "inactive session before open date stays inactive",
			session: Session{
				IsActive:             false,
				EndDate:              time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
				RegistrationOpenDate: timePtr(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)),
			},
			wantChanged: false,
			wantActive:  false,
		},
		{
			name: "admin-deactivated session with no open date is left alone",
			session: Session{
				IsActive: false,
				EndDate:  time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
			},
			wantChanged: false,
			wantActive:  false,
		},
		{
			name: "active session with no windows stays active",
			session: Session{
				IsActive: true,
				EndDate:  time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
			},
			wantChanged: false,
			wantActive:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := tt.session
			changed := session.EvaluateLifecycle(now)

			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantActive, session.IsActive)
		})
	}
}

// End dates compare by calendar date while close dates compare by full
// timestamp. Both rules see the same instant but fire differently.
func TestEvaluateLifecycleDateGranularity(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	morning := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	endsThisMorning := Session{
		IsActive: true,
		EndDate:  morning,
	}
	changed := endsThisMorning.EvaluateLifecycle(now)
	assert.False(t, changed, "end date is still today, rule 1 must not fire")
	assert.True(t, endsThisMorning.IsActive)

	closedThisMorning := Session{
		IsActive:              true,
		EndDate:               time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		RegistrationCloseDate: timePtr(morning),
	}
	changed = closedThisMorning.EvaluateLifecycle(now)
	assert.True(t, changed, "close timestamp passed hours ago, rule 2 must fire")
	assert.False(t, closedThisMorning.IsActive)
}
