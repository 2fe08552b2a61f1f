package response

import "github.com/rinkside/league-api/internal/domain"

// PriceResponse is the effective-price view for a session or league.
// Price is null when nothing is populated and the UI shows "TBA".
type PriceResponse struct {
	Price *float64 `json:"price"`
}

type DeleteSessionResponse struct {
	Deleted     bool   `json:"deleted"`
	Deactivated bool   `json:"deactivated"`
	Message     string `json:"message"`
}

type RegistrationPaymentsResponse struct {
	Payments  []domain.Payment `json:"payments"`
	TotalPaid float64          `json:"totalPaid"`
}
