package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/config"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		CancellationWindow:   24 * time.Hour,
		MinBookingLead:       0,
		SlotGranularity:      30 * time.Minute,
		WarningExpiry:        90 * 24 * time.Hour,
		FeePenaltyMultiplier: 1.5,
		FeePenaltyDuration:   30 * 24 * time.Hour,
		SuspensionDuration:   14 * 24 * time.Hour,
		OfficeOpenHour:       9,
		OfficeCloseHour:      17,
	}
}

// fakeAppointmentStore is an in-memory AppointmentStore with the same
// atomicity contract as the real one: the occupancy check and the insert
// in CreateIfSlotFree happen under one lock.
type fakeAppointmentStore struct {
	mu   sync.Mutex
	byID map[string]models.Appointment
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{byID: make(map[string]models.Appointment)}
}

func (f *fakeAppointmentStore) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.byID[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &appointment, nil
}

func (f *fakeAppointmentStore) Save(ctx context.Context, appointment *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[appointment.ID] = *appointment
	return nil
}

func (f *fakeAppointmentStore) CreateIfSlotFree(ctx context.Context, appointment *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.DoctorID == appointment.DoctorID &&
			existing.ScheduledAt.Equal(appointment.ScheduledAt) &&
			existing.Status.HoldsSlot() {
			return ErrSlotUnavailable
		}
	}
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	f.byID[appointment.ID] = *appointment
	return nil
}

func (f *fakeAppointmentStore) SlotHeld(ctx context.Context, doctorID string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.DoctorID == doctorID && existing.ScheduledAt.Equal(at) && existing.Status.HoldsSlot() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentStore) HeldSlots(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var slots []time.Time
	for _, existing := range f.byID {
		if existing.DoctorID != doctorID || !existing.Status.HoldsSlot() {
			continue
		}
		if existing.ScheduledAt.Before(from) || !existing.ScheduledAt.Before(to) {
			continue
		}
		slots = append(slots, existing.ScheduledAt)
	}
	return slots, nil
}

// stubWarningStore serves canned active warnings.
type stubWarningStore struct {
	active []models.Warning
}

func (s *stubWarningStore) GetByID(ctx context.Context, id string) (*models.Warning, error) {
	return nil, ErrWarningNotFound
}

func (s *stubWarningStore) Create(ctx context.Context, warning *models.Warning) error {
	s.active = append(s.active, *warning)
	return nil
}

func (s *stubWarningStore) Save(ctx context.Context, warning *models.Warning) error {
	return nil
}

func (s *stubWarningStore) ListActive(ctx context.Context, userID string, now time.Time) ([]models.Warning, error) {
	var active []models.Warning
	for _, w := range s.active {
		if w.UserID == userID && w.Active(now) {
			active = append(active, w)
		}
	}
	return active, nil
}

func (s *stubWarningStore) Delete(ctx context.Context, id string) error {
	return nil
}

// stubPenaltyStore serves canned active penalties.
type stubPenaltyStore struct {
	active []models.Penalty
}

func (s *stubPenaltyStore) GetByID(ctx context.Context, id string) (*models.Penalty, error) {
	return nil, ErrPenaltyNotFound
}

func (s *stubPenaltyStore) Create(ctx context.Context, penalty *models.Penalty) error {
	s.active = append(s.active, *penalty)
	return nil
}

func (s *stubPenaltyStore) ListActive(ctx context.Context, userID string, now time.Time) ([]models.Penalty, error) {
	var active []models.Penalty
	for _, p := range s.active {
		if p.UserID == userID && p.Active(now) {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *stubPenaltyStore) Revoke(ctx context.Context, id string, now time.Time) error {
	return nil
}
