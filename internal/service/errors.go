package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected operations. Every error a lifecycle
// operation can return is one of these (or wraps one), so callers can
// map them to transport-level responses with errors.Is/errors.As.
var (
	// ErrInvalidTime rejects a requested time that is not far enough in the future.
	ErrInvalidTime = errors.New("requested time must be in the future")
	// ErrSlotUnavailable rejects a booking for an occupied (doctor, time) slot.
	ErrSlotUnavailable = errors.New("slot is already booked")
	// ErrInvalidTransition rejects a state machine operation from an illegal source state.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCancellationWindowExpired rejects a cancellation inside the minimum lead window.
	ErrCancellationWindowExpired = errors.New("cancellation window has expired")
	// ErrDuplicateReport rejects a resubmitted report before the first one is resolved.
	ErrDuplicateReport = errors.New("an unresolved report already exists for this appointment")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrReportNotFound      = errors.New("report not found")
	ErrWarningNotFound     = errors.New("warning not found")
	ErrPenaltyNotFound     = errors.New("penalty not found")
)

// BookingForbiddenError rejects a booking because of the patient's account
// standing. It carries the blocking status so the client can explain why.
type BookingForbiddenError struct {
	Status AccountStatus
}

func (e *BookingForbiddenError) Error() string {
	return fmt.Sprintf("booking forbidden: account is %s", e.Status)
}
