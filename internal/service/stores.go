package service

import (
	"context"
	"time"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

// AppointmentStore is the persistence contract the appointment lifecycle
// needs. CreateIfSlotFree must check slot occupancy and insert as one
// atomic unit; two concurrent calls for the same (doctor, time) must not
// both succeed — the loser gets ErrSlotUnavailable.
type AppointmentStore interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Save(ctx context.Context, appointment *models.Appointment) error
	CreateIfSlotFree(ctx context.Context, appointment *models.Appointment) error
	SlotHeld(ctx context.Context, doctorID string, at time.Time) (bool, error)
	HeldSlots(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error)
}

// ReportStore is the persistence contract for moderation reports.
// ResolveWithEffect must persist the resolved report and its side-effect
// record in one transaction; a resolved report with no matching
// warning/penalty (or vice versa) must never be observable.
type ReportStore interface {
	GetByID(ctx context.Context, id string) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	Save(ctx context.Context, report *models.Report) error
	// FindUnresolved returns the open report for (reporterID, appointmentID),
	// or nil when there is none.
	FindUnresolved(ctx context.Context, reporterID string, appointmentID *string) (*models.Report, error)
	ResolveWithEffect(ctx context.Context, report *models.Report, warning *models.Warning, penalty *models.Penalty) error
}

// WarningStore is the persistence contract for warnings.
type WarningStore interface {
	GetByID(ctx context.Context, id string) (*models.Warning, error)
	Create(ctx context.Context, warning *models.Warning) error
	Save(ctx context.Context, warning *models.Warning) error
	ListActive(ctx context.Context, userID string, now time.Time) ([]models.Warning, error)
	Delete(ctx context.Context, id string) error
}

// PenaltyStore is the persistence contract for penalties.
type PenaltyStore interface {
	GetByID(ctx context.Context, id string) (*models.Penalty, error)
	Create(ctx context.Context, penalty *models.Penalty) error
	ListActive(ctx context.Context, userID string, now time.Time) ([]models.Penalty, error)
	// Revoke ends a penalty at the given instant.
	Revoke(ctx context.Context, id string, now time.Time) error
}
