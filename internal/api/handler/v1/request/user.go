package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	LeagueID  *uint  `json:"leagueId"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Position, validation.In("", "forward", "defense", "goalie")),
	)
}
