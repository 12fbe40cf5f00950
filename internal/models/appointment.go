package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// HoldsSlot reports whether an appointment in this status keeps its
// (doctor, time) slot occupied. Cancelled and completed appointments
// release the slot.
func (s AppointmentStatus) HoldsSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further status transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment represents a scheduled consultation between a patient and a doctor.
// ScheduledAt identifies the slot together with DoctorID; it does not change
// after confirmation.
type Appointment struct {
	BaseModel
	PatientID    string            `gorm:"size:36;index" json:"patientId"`
	DoctorID     string            `gorm:"size:36;index:idx_doctor_slot" json:"doctorId"`
	ScheduledAt  time.Time         `gorm:"index:idx_doctor_slot" json:"scheduledAt"`
	Status       AppointmentStatus `gorm:"size:20;default:'pending';index" json:"status"`
	FeeCharged   float64           `json:"feeCharged"`
	CancelledAt  *time.Time        `json:"cancelledAt,omitempty"`
	CancelReason string            `gorm:"size:255" json:"cancelReason,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
