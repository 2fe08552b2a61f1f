package domain

import "time"

type League struct {
	ID                    uint       `json:"id"`
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	StartDate             *time.Time `json:"startDate"`
	EarlyBirdPrice        *float64   `json:"earlyBirdPrice"`
	EarlyBirdEndDate      *time.Time `json:"earlyBirdEndDate"`
	RegularPrice          *float64   `json:"regularPrice"`
	RegistrationOpenDate  *time.Time `json:"registrationOpenDate"`
	RegistrationCloseDate *time.Time `json:"registrationCloseDate"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (l League) Pricing() PricingWindow {
	return PricingWindow{
		EarlyBirdPrice:   l.EarlyBirdPrice,
		EarlyBirdEndDate: l.EarlyBirdEndDate,
		RegularPrice:     l.RegularPrice,
	}
}
