package domain

import "time"

const PaymentSuccess = "Success"

// Payment is one gateway charge against a registration. A registration can
// accumulate several rows over corrections and refunds; the total paid is
// always the sum of successful payments, never a stored figure.
type Payment struct {
	ID             uint      `json:"id"`
	RegistrationID uint      `json:"registrationId"`
	Amount         float64   `json:"amount"`
	TransactionID  string    `json:"transactionId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
