package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestResolvePrice(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		window    PricingWindow
		wantPrice float64
		wantOK    bool
	}{
		{
			name: "early bird wins until its end date",
			window: PricingWindow{
				EarlyBirdPrice:   floatPtr(25),
				EarlyBirdEndDate: timePtr(tomorrow),
				RegularPrice:     floatPtr(40),
			},
			wantPrice: 25,
			wantOK:    true,
		},
		{
			name: "regular price after the early bird window",
			window: PricingWindow{
				EarlyBirdPrice:   floatPtr(25),
				EarlyBirdEndDate: timePtr(yesterday),
				RegularPrice:     floatPtr(40),
			},
			wantPrice: 40,
			wantOK:    true,
		},
		{
			name: "early bird end date is inclusive",
			window: PricingWindow{
				EarlyBirdPrice:   floatPtr(25),
				EarlyBirdEndDate: timePtr(now),
				RegularPrice:     floatPtr(40),
			},
			wantPrice: 25,
			wantOK:    true,
		},
		{
			name: "legacy fee when no tiered prices exist",
			window: PricingWindow{
				Fee: floatPtr(150),
			},
			wantPrice: 150,
			wantOK:    true,
		},
		{
			name: "legacy fee beats an expired early bird",
			window: PricingWindow{
				EarlyBirdPrice:   floatPtr(25),
				EarlyBirdEndDate: timePtr(yesterday),
				Fee:              floatPtr(150),
			},
			wantPrice: 150,
			wantOK:    true,
		},
		{
			name: "early bird with no end date is the last resort",
			window: PricingWindow{
				EarlyBirdPrice: floatPtr(25),
			},
			wantPrice: 25,
			wantOK:    true,
		},
		{
			name: "expired early bird with nothing else still resolves",
			window: PricingWindow{
				EarlyBirdPrice:   floatPtr(25),
				EarlyBirdEndDate: timePtr(yesterday),
			},
			wantPrice: 25,
			wantOK:    true,
		},
		{
			name:      "no price configured",
			window:    PricingWindow{},
			wantPrice: 0,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := ResolvePrice(now, tt.window)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrice, price)
		})
	}
}

// A session whose only price is the legacy fee resolves to that fee even when
// its league carries a regular price; session pricing never consults the
// league's window.
func TestResolvePriceSessionFeeIgnoresLeaguePricing(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	league := League{RegularPrice: floatPtr(175)}
	session := Session{Fee: floatPtr(150), League: &league}

	price, ok := ResolvePrice(now, session.Pricing())

	assert.True(t, ok)
	assert.Equal(t, 150.0, price)
}
