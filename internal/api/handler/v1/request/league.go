package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type LeagueRequest struct {
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	StartDate             *time.Time `json:"startDate"`
	EarlyBirdPrice        *float64   `json:"earlyBirdPrice"`
	EarlyBirdEndDate      *time.Time `json:"earlyBirdEndDate"`
	RegularPrice          *float64   `json:"regularPrice"`
	RegistrationOpenDate  *time.Time `json:"registrationOpenDate"`
	RegistrationCloseDate *time.Time `json:"registrationCloseDate"`
}

func (req *LeagueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.EarlyBirdPrice, validation.Min(0.0)),
		validation.Field(&req.RegularPrice, validation.Min(0.0)),
	)
}
