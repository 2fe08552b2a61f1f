package domain

import "time"

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

// SessionRegistration is a sign-up for one session. UserID is nil for
// registrations an administrator enters by hand for people without accounts.
// The contact fields are a snapshot taken at registration time and are not
// kept in sync with the User record afterwards.
type SessionRegistration struct {
	ID            uint       `json:"id"`
	SessionID     uint       `json:"sessionId"`
	UserID        *uint      `json:"userId"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	Position      string     `json:"position"`
	AmountPaid    float64    `json:"amountPaid"`
	PaymentStatus string     `json:"paymentStatus"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
