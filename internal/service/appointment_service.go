package service

import (
	"context"
	"time"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/config"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

// appointmentTransitions is the closed transition table for the
// appointment state machine. Anything not listed is rejected.
var appointmentTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCancelled: {},
	models.StatusCompleted: {},
}

func canTransition(from, to models.AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AppointmentService owns the appointment lifecycle:
// pending -> confirmed -> completed, with cancelled reachable from
// pending or confirmed. Completed and cancelled are terminal.
type AppointmentService struct {
	appointments AppointmentStore
	policy       config.PolicyConfig
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(appointments AppointmentStore, policy config.PolicyConfig) *AppointmentService {
	return &AppointmentService{appointments: appointments, policy: policy}
}

// Create books a new appointment in pending status. The scheduled time
// must be in the future and the slot must be free; the occupancy check and
// the insert happen in one atomic store operation, so two concurrent
// creates for the same slot cannot both succeed.
func (s *AppointmentService) Create(ctx context.Context, doctorID, patientID string, scheduledAt time.Time, fee float64, now time.Time) (*models.Appointment, error) {
	if !scheduledAt.After(now.Add(s.policy.MinBookingLead)) {
		return nil, ErrInvalidTime
	}

	appointment := &models.Appointment{
		DoctorID:    doctorID,
		PatientID:   patientID,
		ScheduledAt: scheduledAt,
		Status:      models.StatusPending,
		FeeCharged:  fee,
	}
	if err := s.appointments.CreateIfSlotFree(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Confirm moves a pending appointment to confirmed.
func (s *AppointmentService) Confirm(ctx context.Context, id string) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(appointment.Status, models.StatusConfirmed) {
		return nil, ErrInvalidTransition
	}
	appointment.Status = models.StatusConfirmed
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel moves a pending or confirmed appointment to cancelled, releasing
// its slot. Cancellation must happen at least the configured window before
// the scheduled time; the boundary itself is too late.
func (s *AppointmentService) Cancel(ctx context.Context, id, reason string, now time.Time) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(appointment.Status, models.StatusCancelled) {
		return nil, ErrInvalidTransition
	}
	if !now.Add(s.policy.CancellationWindow).Before(appointment.ScheduledAt) {
		return nil, ErrCancellationWindowExpired
	}
	appointment.Status = models.StatusCancelled
	appointment.CancelledAt = &now
	appointment.CancelReason = reason
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Complete moves a confirmed appointment to completed. A future
// appointment cannot be completed.
func (s *AppointmentService) Complete(ctx context.Context, id string, now time.Time) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(appointment.Status, models.StatusCompleted) {
		return nil, ErrInvalidTransition
	}
	if now.Before(appointment.ScheduledAt) {
		return nil, ErrInvalidTransition
	}
	appointment.Status = models.StatusCompleted
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}
