package models

import (
	"time"
)

// PenaltyType determines what a penalty does to the account
type PenaltyType string

const (
	// PenaltyFeeMultiplier surcharges future bookings without blocking them.
	PenaltyFeeMultiplier PenaltyType = "fee_multiplier"
	// PenaltyTemporarySuspension blocks booking while active. With a nil
	// EffectiveUntil the suspension is indefinite, i.e. a ban.
	PenaltyTemporarySuspension PenaltyType = "temporary_suspension"
)

// Penalty represents a moderation sanction on a user. Several penalties may
// be active for the same user at once; fee multipliers compose by taking
// the maximum, never the product.
type Penalty struct {
	BaseModel
	UserID         string      `gorm:"size:36;index" json:"userId"`
	PenaltyType    PenaltyType `gorm:"size:30" json:"penaltyType"`
	Reason         string      `gorm:"size:255" json:"reason"`
	Multiplier     float64     `gorm:"default:1.0" json:"multiplier"`
	EffectiveFrom  time.Time   `json:"effectiveFrom"`
	EffectiveUntil *time.Time  `json:"effectiveUntil,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Active reports whether the penalty is in force at now.
// effectiveFrom <= now < effectiveUntil, with a nil until meaning indefinite.
func (p Penalty) Active(now time.Time) bool {
	if p.EffectiveFrom.After(now) {
		return false
	}
	return p.EffectiveUntil == nil || p.EffectiveUntil.After(now)
}

// Blocking reports whether the penalty forbids new bookings while active.
func (p Penalty) Blocking() bool {
	return p.PenaltyType == PenaltyTemporarySuspension
}

// Indefinite reports whether the penalty has no end date.
func (p Penalty) Indefinite() bool {
	return p.EffectiveUntil == nil
}
