package domain

import "time"

// PricingWindow carries the pricing fields shared by League and Session.
// The legacy Fee field predates EarlyBirdPrice/RegularPrice and still holds
// the only price on older rows, so it participates in resolution.
type PricingWindow struct {
	EarlyBirdPrice   *float64
	EarlyBirdEndDate *time.Time
	RegularPrice     *float64
	Fee              *float64
}

// ResolvePrice computes the effective price at the given instant.
//
// Precedence:
//  1. early-bird price while the early-bird window is open (now <= end)
//  2. regular price
//  3. legacy flat fee
//  4. early-bird price with no end date, or whose window has passed with
//     nothing to fall back to
//  5. no price at all; the second return is false and callers display "TBA"
//
// Collapsing rules 3-4 into rule 2 breaks rows where only the legacy fee or
// only an endless early-bird price is populated.
func ResolvePrice(now time.Time, w PricingWindow) (float64, bool) {
	if w.EarlyBirdPrice != nil && w.EarlyBirdEndDate != nil && !now.After(*w.EarlyBirdEndDate) {
		return *w.EarlyBirdPrice, true
	}
	if w.RegularPrice != nil {
		return *w.RegularPrice, true
	}
	if w.Fee != nil {
		return *w.Fee, true
	}
	if w.EarlyBirdPrice != nil {
		return *w.EarlyBirdPrice, true
	}
	return 0, false
}
