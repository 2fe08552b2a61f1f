package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var ErrPaymentDeclined = errors.New("payment declined")

// PaymentResult is what the gateway reports for one charge attempt.
type PaymentResult struct {
	TransactionID string
	Amount        float64
	Status        string
}

// MockPaymentGateway stands in for a real processor. It approves any
// positive charge and declines the rest, which is enough to exercise both
// sides of the registration workflow.
type MockPaymentGateway struct {
	clock clockwork.Clock
}

func NewMockPaymentGateway(clock clockwork.Clock) *MockPaymentGateway {
	return &MockPaymentGateway{
		clock: clock,
	}
}

func (g *MockPaymentGateway) Charge(ctx context.Context, amount float64) (PaymentResult, error) {
	if amount <= 0 {
		return PaymentResult{}, ErrPaymentDeclined
	}

	return PaymentResult{
		TransactionID: uuid.NewString(),
		Amount:        amount,
		Status:        "Success",
	}, nil
}
