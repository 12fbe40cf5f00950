package service

import (
	"context"
	"time"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

// AccountStatus is a user's derived standing. It is never stored; it is
// recomputed from the active warning and penalty records on every check,
// so it cannot drift from them.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountWarned    AccountStatus = "warned"
	AccountSuspended AccountStatus = "suspended"
	AccountBanned    AccountStatus = "banned"
)

// DeriveStatus computes the standing from active records at now.
// Precedence is strict: banned > suspended > warned > active.
// A fee-multiplier penalty alone does not change standing; it only
// surcharges future bookings.
func DeriveStatus(warnings []models.Warning, penalties []models.Penalty, now time.Time) AccountStatus {
	suspended := false
	for _, p := range penalties {
		if !p.Active(now) || !p.Blocking() {
			continue
		}
		if p.Indefinite() {
			return AccountBanned
		}
		suspended = true
	}
	if suspended {
		return AccountSuspended
	}
	for _, w := range warnings {
		if w.Active(now) {
			return AccountWarned
		}
	}
	return AccountActive
}

// AccountStatusPolicy answers admission-control questions about a user.
type AccountStatusPolicy struct {
	warnings  WarningStore
	penalties PenaltyStore
}

// NewAccountStatusPolicy creates a new AccountStatusPolicy.
func NewAccountStatusPolicy(warnings WarningStore, penalties PenaltyStore) *AccountStatusPolicy {
	return &AccountStatusPolicy{warnings: warnings, penalties: penalties}
}

// StatusOf returns the user's standing at now.
func (p *AccountStatusPolicy) StatusOf(ctx context.Context, userID string, now time.Time) (AccountStatus, error) {
	warnings, err := p.warnings.ListActive(ctx, userID, now)
	if err != nil {
		return "", err
	}
	penalties, err := p.penalties.ListActive(ctx, userID, now)
	if err != nil {
		return "", err
	}
	return DeriveStatus(warnings, penalties, now), nil
}

// CanBook reports whether the user's standing permits a new booking.
// Warned users may still book; only suspensions and bans block.
func (p *AccountStatusPolicy) CanBook(ctx context.Context, userID string, now time.Time) (bool, AccountStatus, error) {
	status, err := p.StatusOf(ctx, userID, now)
	if err != nil {
		return false, "", err
	}
	return status != AccountSuspended && status != AccountBanned, status, nil
}
