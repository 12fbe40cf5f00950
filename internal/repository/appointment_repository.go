package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
)

// AppointmentRepository is the GORM-backed appointment store.
type AppointmentRepository struct {
	db *gorm.DB
}

var _ service.AppointmentStore = (*AppointmentRepository)(nil)

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// GetByID fetches an appointment by its ID.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Save persists changes to an existing appointment.
func (r *AppointmentRepository) Save(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// CreateIfSlotFree inserts the appointment unless a pending or confirmed
// appointment already holds the same (doctor, time) slot. The occupancy
// check locks the matching rows for the duration of the transaction, so
// concurrent inserts for one slot serialize and only the first succeeds.
func (r *AppointmentRepository) CreateIfSlotFree(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var held int64
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&models.Appointment{}).
			Where("doctor_id = ? AND scheduled_at = ? AND status IN ?",
				appointment.DoctorID, appointment.ScheduledAt,
				[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Count(&held).Error
		if err != nil {
			return err
		}
		if held > 0 {
			return service.ErrSlotUnavailable
		}
		return tx.Create(appointment).Error
	})
}

// SlotHeld reports whether a non-cancelled appointment occupies the slot.
func (r *AppointmentRepository) SlotHeld(ctx context.Context, doctorID string, at time.Time) (bool, error) {
	var held int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND scheduled_at = ? AND status IN ?",
			doctorID, at,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&held).Error
	if err != nil {
		return false, err
	}
	return held > 0, nil
}

// HeldSlots returns the occupied slot times for a doctor in [from, to).
func (r *AppointmentRepository) HeldSlots(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error) {
	var slots []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status IN ?",
			doctorID, from, to,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Pluck("scheduled_at", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
