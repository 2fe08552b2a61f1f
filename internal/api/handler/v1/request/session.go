package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEndBeforeStart = errors.New("endDate must not be before startDate")

type SessionRequest struct {
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
}

func (req *SessionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.MaxPlayers, validation.Min(0)),
		validation.Field(&req.Fee, validation.Min(0.0)),
		validation.Field(&req.EarlyBirdPrice, validation.Min(0.0)),
		validation.Field(&req.RegularPrice, validation.Min(0.0)),
	)
	if err != nil {
		return err
	}

	if req.EndDate.Before(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}
