package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

var statusNow = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func activeWarning(userID string) models.Warning {
	expires := statusNow.Add(30 * 24 * time.Hour)
	return models.Warning{UserID: userID, Severity: models.SeverityMedium, ExpiresAt: &expires}
}

func expiredWarning(userID string) models.Warning {
	expired := statusNow.Add(-time.Hour)
	return models.Warning{UserID: userID, Severity: models.SeverityMedium, ExpiresAt: &expired}
}

func feePenalty(userID string, multiplier float64, until time.Time) models.Penalty {
	return models.Penalty{
		UserID:         userID,
		PenaltyType:    models.PenaltyFeeMultiplier,
		Multiplier:     multiplier,
		EffectiveFrom:  statusNow.Add(-time.Hour),
		EffectiveUntil: &until,
	}
}

func suspension(userID string, until *time.Time) models.Penalty {
	return models.Penalty{
		UserID:         userID,
		PenaltyType:    models.PenaltyTemporarySuspension,
		Multiplier:     1.0,
		EffectiveFrom:  statusNow.Add(-time.Hour),
		EffectiveUntil: until,
	}
}

func TestDeriveStatus(t *testing.T) {
	suspensionEnd := statusNow.Add(14 * 24 * time.Hour)
	feeEnd := statusNow.Add(30 * 24 * time.Hour)

	tests := []struct {
		name      string
		warnings  []models.Warning
		penalties []models.Penalty
		want      AccountStatus
	}{
		{"no records", nil, nil, AccountActive},
		{"expired warning only", []models.Warning{expiredWarning("u")}, nil, AccountActive},
		{"active warning", []models.Warning{activeWarning("u")}, nil, AccountWarned},
		{"timed suspension", nil, []models.Penalty{suspension("u", &suspensionEnd)}, AccountSuspended},
		{"indefinite suspension is a ban", nil, []models.Penalty{suspension("u", nil)}, AccountBanned},
		{"fee penalty alone does not change standing", nil, []models.Penalty{feePenalty("u", 1.5, feeEnd)}, AccountActive},
		{"fee penalty plus warning", []models.Warning{activeWarning("u")}, []models.Penalty{feePenalty("u", 1.5, feeEnd)}, AccountWarned},
		{
			// Suspension always outranks a warning
			"suspension plus warning",
			[]models.Warning{activeWarning("u")},
			[]models.Penalty{suspension("u", &suspensionEnd)},
			AccountSuspended,
		},
		{
			"ban outranks everything",
			[]models.Warning{activeWarning("u")},
			[]models.Penalty{suspension("u", &suspensionEnd), suspension("u", nil), feePenalty("u", 2.0, feeEnd)},
			AccountBanned,
		},
		{
			"expired suspension does not block",
			nil,
			[]models.Penalty{suspension("u", &statusNow)}, // ended exactly at now
			AccountActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.warnings, tt.penalties, statusNow))
		})
	}
}

func TestAccountStatusPolicy_CanBook(t *testing.T) {
	ctx := context.Background()
	suspensionEnd := statusNow.Add(14 * 24 * time.Hour)

	tests := []struct {
		name       string
		warnings   []models.Warning
		penalties  []models.Penalty
		wantOK     bool
		wantStatus AccountStatus
	}{
		{"active user can book", nil, nil, true, AccountActive},
		{"warned user can still book", []models.Warning{activeWarning("u")}, nil, true, AccountWarned},
		{"suspended user cannot book", nil, []models.Penalty{suspension("u", &suspensionEnd)}, false, AccountSuspended},
		{"banned user cannot book", nil, []models.Penalty{suspension("u", nil)}, false, AccountBanned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewAccountStatusPolicy(
				&stubWarningStore{active: tt.warnings},
				&stubPenaltyStore{active: tt.penalties},
			)
			ok, status, err := policy.CanBook(ctx, "u", statusNow)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}
