package service

import (
	"context"
	"time"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

// BookingService composes admission control, slot availability, fee
// calculation and the appointment lifecycle into the booking operation.
type BookingService struct {
	status       *AccountStatusPolicy
	availability *SlotAvailability
	fees         *FeeCalculator
	appointments *AppointmentService
}

// NewBookingService creates a new BookingService.
func NewBookingService(status *AccountStatusPolicy, availability *SlotAvailability, fees *FeeCalculator, appointments *AppointmentService) *BookingService {
	return &BookingService{
		status:       status,
		availability: availability,
		fees:         fees,
		appointments: appointments,
	}
}

// Book runs the booking pipeline in a fixed order: admission check, slot
// check, fee computation, creation. The final create re-checks occupancy
// atomically, so a race between two bookings for the same slot resolves to
// exactly one winner; the loser sees ErrSlotUnavailable. No partial effect
// survives a failed step.
func (b *BookingService) Book(ctx context.Context, doctorID, patientID string, scheduledAt time.Time, baseFee float64, now time.Time) (*models.Appointment, error) {
	ok, status, err := b.status.CanBook(ctx, patientID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &BookingForbiddenError{Status: status}
	}

	if !b.availability.Bookable(scheduledAt, now) {
		return nil, ErrInvalidTime
	}
	available, err := b.availability.IsAvailable(ctx, doctorID, scheduledAt, now)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	fee, err := b.fees.ComputeFee(ctx, baseFee, patientID, now)
	if err != nil {
		return nil, err
	}

	return b.appointments.Create(ctx, doctorID, patientID, scheduledAt, fee, now)
}
