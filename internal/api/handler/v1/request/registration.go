package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type RegisterForSessionRequest struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Position    string     `json:"position"`
}

func (req *RegisterForSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Position, validation.In("", "forward", "defense", "goalie")),
	)
}

// ManualRegistrationRequest is the admin-entered variant for registrants
// without accounts; payment details are recorded as collected out of band.
type ManualRegistrationRequest struct {
	RegisterForSessionRequest
	AmountPaid    float64 `json:"amountPaid"`
	PaymentStatus string  `json:"paymentStatus"`
}

func (req *ManualRegistrationRequest) Validate() error {
	if err := req.RegisterForSessionRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.AmountPaid, validation.Min(0.0)),
		validation.Field(&req.PaymentStatus, validation.In("", "Pending", "Paid")),
	)
}

type UpdateRegistrationRequest struct {
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	Position      string     `json:"position"`
	AmountPaid    float64    `json:"amountPaid"`
	PaymentStatus string     `json:"paymentStatus"`
}

func (req *UpdateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.AmountPaid, validation.Min(0.0)),
		validation.Field(&req.PaymentStatus, validation.Required, validation.In("Pending", "Paid")),
	)
}
