package domain

import "time"

type Session struct {
	ID                    uint       `json:"id"`
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	StartDate             time.Time  `json:"startDate"`
	EndDate               time.Time  `json:"endDate"`
	Fee                   *float64   `json:"fee"`
	IsActive              bool       `json:"isActive"`
	MaxPlayers            int        `json:"maxPlayers"`
	RegistrationOpenDate  *time.Time `json:"registrationOpenDate"`
	RegistrationCloseDate *time.Time `json:"registrationCloseDate"`
	EarlyBirdPrice        *float64   `json:"earlyBirdPrice"`
	EarlyBirdEndDate      *time.Time `json:"earlyBirdEndDate"`
	RegularPrice          *float64   `json:"regularPrice"`
	LeagueID              *uint      `json:"leagueId"`
	League                *League    `json:"league,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (s Session) Pricing() PricingWindow {
	return PricingWindow{
		EarlyBirdPrice:   s.EarlyBirdPrice,
		EarlyBirdEndDate: s.EarlyBirdEndDate,
		RegularPrice:     s.RegularPrice,
		Fee:              s.Fee,
	}
}

// EvaluateLifecycle recomputes IsActive from the session's date windows at
// the given instant and reports whether the flag changed. It is invoked on
// every listing fetch; callers persist any change.
//
// Rules fire in order and the first match wins:
//  1. active and the end date (calendar date, UTC) has passed → deactivate
//  2. active and the registration close timestamp has passed → deactivate
//  3. inactive and the registration open timestamp has arrived → activate,
//     unless the close timestamp or end date has already passed
//
// The end date compares by calendar date while the close date compares by
// full timestamp. The asymmetry is intentional: changing either granularity
// flips sessions on the edge of a day between active and inactive.
//
// Rule order is what keeps the flag's dual nature coherent. An administrator
// deactivation (the soft-delete path) is only ever reverted by rule 3, which
// requires an open window that has not closed or ended. And a session whose
// windows have passed can never be re-activated here, regardless of what the
// stored flag says.
func (s *Session) EvaluateLifecycle(now time.Time) bool {
	today := dateOnly(now)
	end := dateOnly(s.EndDate)

	if s.IsActive && end.Before(today) {
		s.IsActive = false
		return true
	}
	if s.IsActive && s.RegistrationCloseDate != nil && s.RegistrationCloseDate.Before(now) {
		s.IsActive = false
		return true
	}
	if !s.IsActive && s.RegistrationOpenDate != nil && !s.RegistrationOpenDate.After(now) {
		if s.RegistrationCloseDate != nil && s.RegistrationCloseDate.Before(now) {
			return false
		}
		if end.Before(today) {
			return false
		}
		s.IsActive = true
		return true
	}

	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
