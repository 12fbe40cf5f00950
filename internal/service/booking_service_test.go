package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

func newBookingService(appointments *fakeAppointmentStore, warnings *stubWarningStore, penalties *stubPenaltyStore) *BookingService {
	policy := testPolicy()
	return NewBookingService(
		NewAccountStatusPolicy(warnings, penalties),
		NewSlotAvailability(appointments, policy),
		NewFeeCalculator(penalties),
		NewAppointmentService(appointments, policy),
	)
}

func TestBookingService_Book_Success(t *testing.T) {
	store := newFakeAppointmentStore()
	svc := newBookingService(store, &stubWarningStore{}, &stubPenaltyStore{})

	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)

	appointment, err := svc.Book(context.Background(), "doctor-1", "patient-1", slot, 150, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appointment.Status)
	assert.Equal(t, 150.0, appointment.FeeCharged)
	assert.True(t, appointment.ScheduledAt.Equal(slot))

	held, err := store.SlotHeld(context.Background(), "doctor-1", slot)
	require.NoError(t, err)
	assert.True(t, held)
}

func TestBookingService_Book_SuspendedPatient(t *testing.T) {
	store := newFakeAppointmentStore()
	until := statusNow.Add(14 * 24 * time.Hour)
	penalties := &stubPenaltyStore{active: []models.Penalty{suspension("patient-1", &until)}}
	svc := newBookingService(store, &stubWarningStore{}, penalties)

	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), "doctor-1", "patient-1", slot, 150, statusNow)

	var forbidden *BookingForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, AccountSuspended, forbidden.Status)
	assert.Empty(t, store.byID)
}

func TestBookingService_Book_BannedPatient(t *testing.T) {
	store := newFakeAppointmentStore()
	penalties := &stubPenaltyStore{active: []models.Penalty{suspension("patient-1", nil)}}
	svc := newBookingService(store, &stubWarningStore{}, penalties)

	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), "doctor-1", "patient-1", slot, 150, statusNow)

	var forbidden *BookingForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, AccountBanned, forbidden.Status)
}

func TestBookingService_Book_WarnedPatientMayBook(t *testing.T) {
	store := newFakeAppointmentStore()
	warnings := &stubWarningStore{active: []models.Warning{activeWarning("patient-1")}}
	svc := newBookingService(store, warnings, &stubPenaltyStore{})

	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	appointment, err := svc.Book(context.Background(), "doctor-1", "patient-1", slot, 150, statusNow)
	require.NoError(t, err)
	assert.Equal(t, 150.0, appointment.FeeCharged)
}

func TestBookingService_Book_FeePenaltySurcharge(t *testing.T) {
	store := newFakeAppointmentStore()
	feeEnd := statusNow.Add(30 * 24 * time.Hour)
	penalties := &stubPenaltyStore{active: []models.Penalty{feePenalty("patient-1", 1.5, feeEnd)}}
	svc := newBookingService(store, &stubWarningStore{}, penalties)

	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	appointment, err := svc.Book(context.Background(), "doctor-1", "patient-1", slot, 150, statusNow)
	require.NoError(t, err)
	assert.Equal(t, 225.0, appointment.FeeCharged)
	assert.Equal(t, models.StatusPending, appointment.Status)
}

func TestBookingService_Book_PastSlot(t *testing.T) {
	store := newFakeAppointmentStore()
	svc := newBookingService(store, &stubWarningStore{}, &stubPenaltyStore{})

	now := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), "doctor-1", "patient-1", now.Add(-time.Hour), 150, now)
	assert.ErrorIs(t, err, ErrInvalidTime)

	// The slot exactly at now is not strictly in the future either.
	_, err = svc.Book(context.Background(), "doctor-1", "patient-1", now, 150, now)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestBookingService_Book_SlotTaken(t *testing.T) {
	store := newFakeAppointmentStore()
	svc := newBookingService(store, &stubWarningStore{}, &stubPenaltyStore{})

	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)

	_, err := svc.Book(context.Background(), "doctor-1", "patient-1", slot, 150, now)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), "doctor-1", "patient-2", slot, 150, now)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// A different doctor at the same time is fine.
	_, err = svc.Book(context.Background(), "doctor-2", "patient-2", slot, 150, now)
	assert.NoError(t, err)

	// Cancelling frees the slot for the next patient.
	var held *models.Appointment
	for id := range store.byID {
		a := store.byID[id]
		if a.DoctorID == "doctor-1" {
			held = &a
		}
	}
	require.NotNil(t, held)
	_, err = svc.appointments.Cancel(context.Background(), held.ID, "patient is unwell", now)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), "doctor-1", "patient-2", slot, 150, now)
	assert.NoError(t, err)
}

// The admission check runs before the slot check: a suspended patient asking
// for an occupied slot learns about the suspension, not the slot.
func TestBookingService_Book_CheckOrder(t *testing.T) {
	store := newFakeAppointmentStore()
	slot := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateIfSlotFree(context.Background(), &models.Appointment{
		DoctorID:    "doctor-1",
		PatientID:   "patient-0",
		ScheduledAt: slot,
		Status:      models.StatusConfirmed,
	}))

	until := statusNow.Add(14 * 24 * time.Hour)
	penalties := &stubPenaltyStore{active: []models.Penalty{suspension("patient-1", &until)}}
	svc := newBookingService(store, &stubWarningStore{}, penalties)

	_, err := svc.Book(context.Background(), "doctor-1", "patient-1", slot, 150, statusNow)
	var forbidden *BookingForbiddenError
	assert.ErrorAs(t, err, &forbidden)
	assert.False(t, errors.Is(err, ErrSlotUnavailable))
}
