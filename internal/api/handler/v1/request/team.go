package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type TeamRequest struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	CaptainID  *uint  `json:"captainId"`
	MaxPlayers int    `json:"maxPlayers"`
}

func (req *TeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Color, validation.Length(0, 30)),
		validation.Field(&req.MaxPlayers, validation.Min(0)),
	)
}

type AssignPlayerRequest struct {
	RegistrationID uint `json:"registrationId"`
	JerseyNumber   *int `json:"jerseyNumber"`
}

func (req *AssignPlayerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RegistrationID, validation.Required, validation.Min(uint(1))),
	)
}

type MovePlayerRequest struct {
	ToTeamID uint `json:"toTeamId"`
}

func (req *MovePlayerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ToTeamID, validation.Required, validation.Min(uint(1))),
	)
}
