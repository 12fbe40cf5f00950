package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
)

// ReportRepository is the GORM-backed report store.
type ReportRepository struct {
	db *gorm.DB
}

var _ service.ReportStore = (*ReportRepository)(nil)

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// GetByID fetches a report by its ID.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Create inserts a new report.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// Save persists changes to an existing report.
func (r *ReportRepository) Save(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// FindUnresolved returns the reporter's open report for the appointment,
// or nil when there is none. A nil appointment ID matches only reports
// filed without one.
func (r *ReportRepository) FindUnresolved(ctx context.Context, reporterID string, appointmentID *string) (*models.Report, error) {
	query := r.db.WithContext(ctx).
		Where("reporter_id = ? AND status <> ?", reporterID, models.ReportStatusResolved)
	if appointmentID == nil {
		query = query.Where("appointment_id IS NULL")
	} else {
		query = query.Where("appointment_id = ?", *appointmentID)
	}

	var report models.Report
	err := query.First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ResolveWithEffect persists the resolved report together with the
// warning or penalty its resolution produced, in a single transaction.
func (r *ReportRepository) ResolveWithEffect(ctx context.Context, report *models.Report, warning *models.Warning, penalty *models.Penalty) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(report).Error; err != nil {
			return err
		}
		if warning != nil {
			if err := tx.Create(warning).Error; err != nil {
				return err
			}
		}
		if penalty != nil {
			if err := tx.Create(penalty).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
