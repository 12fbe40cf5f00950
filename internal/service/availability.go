package service

import (
	"context"
	"time"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/config"
)

// SlotAvailability decides whether a (doctor, time) slot can be booked.
// A slot collides only on exact timestamp equality; the slot width comes
// from the configured grid, not from an overlap computation.
type SlotAvailability struct {
	appointments AppointmentStore
	policy       config.PolicyConfig
}

// NewSlotAvailability creates a new SlotAvailability.
func NewSlotAvailability(appointments AppointmentStore, policy config.PolicyConfig) *SlotAvailability {
	return &SlotAvailability{appointments: appointments, policy: policy}
}

// Bookable reports whether the timestamp itself is far enough in the
// future to book, independent of occupancy.
func (s *SlotAvailability) Bookable(at, now time.Time) bool {
	return at.After(now.Add(s.policy.MinBookingLead))
}

// IsAvailable reports whether the doctor's slot at the given time can be
// booked at now: the time must be in the future and no pending or
// confirmed appointment may hold it.
func (s *SlotAvailability) IsAvailable(ctx context.Context, doctorID string, at, now time.Time) (bool, error) {
	if !s.Bookable(at, now) {
		return false, nil
	}
	held, err := s.appointments.SlotHeld(ctx, doctorID, at)
	if err != nil {
		return false, err
	}
	return !held, nil
}

// FreeSlotsForDay returns the doctor's open slots on the office-hours grid
// for the day containing dayStart. Past slots and held slots are excluded.
func (s *SlotAvailability) FreeSlotsForDay(ctx context.Context, doctorID string, day time.Time, now time.Time) ([]time.Time, error) {
	open := time.Date(day.Year(), day.Month(), day.Day(), s.policy.OfficeOpenHour, 0, 0, 0, day.Location())
	close := time.Date(day.Year(), day.Month(), day.Day(), s.policy.OfficeCloseHour, 0, 0, 0, day.Location())

	held, err := s.appointments.HeldSlots(ctx, doctorID, open, close)
	if err != nil {
		return nil, err
	}
	occupied := make(map[time.Time]bool, len(held))
	for _, t := range held {
		occupied[t.UTC()] = true
	}

	slots := make([]time.Time, 0)
	for t := open; t.Before(close); t = t.Add(s.policy.SlotGranularity) {
		if !s.Bookable(t, now) {
			continue
		}
		if occupied[t.UTC()] {
			continue
		}
		slots = append(slots, t)
	}
	return slots, nil
}
