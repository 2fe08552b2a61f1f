package domain

import "time"

type Team struct {
	ID         uint      `json:"id"`
	SessionID  uint      `json:"sessionId"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	CaptainID  *uint     `json:"captainId"`
	MaxPlayers int       `json:"maxPlayers"`
	Players    []Player  `json:"players,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Player is a drafted roster slot: exactly one registration on one team.
type Player struct {
	ID             uint      `json:"id"`
	TeamID         uint      `json:"teamId"`
	RegistrationID uint      `json:"registrationId"`
	UserID         *uint     `json:"userId"`
	JerseyNumber   *int      `json:"jerseyNumber"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DraftEvent is broadcast to draft-board watchers when a roster changes.
type DraftEvent struct {
	Type           string    `json:"type"` // "assigned", "moved", "unassigned"
	SessionID      uint      `json:"sessionId"`
	TeamID         uint      `json:"teamId"`
	FromTeamID     *uint     `json:"fromTeamId,omitempty"`
	PlayerID       uint      `json:"playerId"`
	RegistrationID uint      `json:"registrationId"`
	At             time.Time `json:"at"`
}

const (
	DraftAssigned   = "assigned"
	DraftMoved      = "moved"
	DraftUnassigned = "unassigned"
)
