package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotAvailability_IsAvailable(t *testing.T) {
	ctx := context.Background()
	store := newFakeAppointmentStore()
	availability := NewSlotAvailability(store, testPolicy())
	lifecycle := NewAppointmentService(store, testPolicy())

	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)

	// Free future slot
	available, err := availability.IsAvailable(ctx, "doctor-1", slot, now)
	require.NoError(t, err)
	assert.True(t, available)

	// Past and present timestamps are never available
	available, err = availability.IsAvailable(ctx, "doctor-1", now, now)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = availability.IsAvailable(ctx, "doctor-1", now.Add(-time.Hour), now)
	require.NoError(t, err)
	assert.False(t, available)

	// Booked slot is occupied, for that doctor only
	_, err = lifecycle.Create(ctx, "doctor-1", "patient-1", slot, 150, now)
	require.NoError(t, err)

	available, err = availability.IsAvailable(ctx, "doctor-1", slot, now)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = availability.IsAvailable(ctx, "doctor-2", slot, now)
	require.NoError(t, err)
	assert.True(t, available)

	// Exact timestamp equality is the only collision: the adjacent grid
	// slot is free even though it is 30 minutes away.
	available, err = availability.IsAvailable(ctx, "doctor-1", slot.Add(30*time.Minute), now)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestSlotAvailability_MinimumLead(t *testing.T) {
	ctx := context.Background()
	policy := testPolicy()
	policy.MinBookingLead = 2 * time.Hour
	availability := NewSlotAvailability(newFakeAppointmentStore(), policy)

	now := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)

	available, err := availability.IsAvailable(ctx, "doctor-1", now.Add(time.Hour), now)
	require.NoError(t, err)
	assert.False(t, available, "inside the minimum lead window")

	available, err = availability.IsAvailable(ctx, "doctor-1", now.Add(3*time.Hour), now)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestSlotAvailability_FreeSlotsForDay(t *testing.T) {
	ctx := context.Background()
	store := newFakeAppointmentStore()
	availability := NewSlotAvailability(store, testPolicy())
	lifecycle := NewAppointmentService(store, testPolicy())

	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	day := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)

	// 9:00-17:00 on a 30 minute grid is 16 slots
	slots, err := availability.FreeSlotsForDay(ctx, "doctor-1", day, now)
	require.NoError(t, err)
	assert.Len(t, slots, 16)

	// Booking 10:00 removes exactly that slot
	booked := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	_, err = lifecycle.Create(ctx, "doctor-1", "patient-1", booked, 150, now)
	require.NoError(t, err)

	slots, err = availability.FreeSlotsForDay(ctx, "doctor-1", day, now)
	require.NoError(t, err)
	assert.Len(t, slots, 15)
	assert.NotContains(t, slots, booked)

	// Same-day queries hide the slots already in the past
	midday := time.Date(2025, 12, 5, 12, 0, 0, 0, time.UTC)
	slots, err = availability.FreeSlotsForDay(ctx, "doctor-1", day, midday)
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.After(midday))
	}
}
