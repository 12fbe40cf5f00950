package service

import (
	"context"
	"time"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

// MaxMultiplier returns the largest multiplier among the penalties active
// at now, or 1.0 when none applies. Simultaneous multipliers compose by
// maximum, never by product; a user with ×1.5 and ×2.0 active pays ×2.0.
func MaxMultiplier(penalties []models.Penalty, now time.Time) float64 {
	multiplier := 1.0
	for _, p := range penalties {
		if !p.Active(now) {
			continue
		}
		if p.Multiplier > multiplier {
			multiplier = p.Multiplier
		}
	}
	return multiplier
}

// FeeCalculator computes the effective consultation fee for a booking.
type FeeCalculator struct {
	penalties PenaltyStore
}

// NewFeeCalculator creates a new FeeCalculator.
func NewFeeCalculator(penalties PenaltyStore) *FeeCalculator {
	return &FeeCalculator{penalties: penalties}
}

// ComputeFee applies the user's active penalty surcharge to the base fee.
func (f *FeeCalculator) ComputeFee(ctx context.Context, baseFee float64, userID string, now time.Time) (float64, error) {
	penalties, err := f.penalties.ListActive(ctx, userID, now)
	if err != nil {
		return 0, err
	}
	return baseFee * MaxMultiplier(penalties, now), nil
}
