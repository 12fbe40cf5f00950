package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
)

// WarningRepository is the GORM-backed warning store.
type WarningRepository struct {
	db *gorm.DB
}

var _ service.WarningStore = (*WarningRepository)(nil)

// NewWarningRepository creates a new WarningRepository.
func NewWarningRepository(db *gorm.DB) *WarningRepository {
	return &WarningRepository{db: db}
}

// GetByID fetches a warning by its ID.
func (r *WarningRepository) GetByID(ctx context.Context, id string) (*models.Warning, error) {
	var warning models.Warning
	err := r.db.WithContext(ctx).First(&warning, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrWarningNotFound
	}
	if err != nil {
		return nil, err
	}
	return &warning, nil
}

// Create inserts a new warning.
func (r *WarningRepository) Create(ctx context.Context, warning *models.Warning) error {
	return r.db.WithContext(ctx).Create(warning).Error
}

// Save persists changes to an existing warning.
func (r *WarningRepository) Save(ctx context.Context, warning *models.Warning) error {
	return r.db.WithContext(ctx).Save(warning).Error
}

// ListActive returns the user's warnings still in force at now.
func (r *WarningRepository) ListActive(ctx context.Context, userID string, now time.Time) ([]models.Warning, error) {
	var warnings []models.Warning
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (expires_at IS NULL OR expires_at > ?)", userID, now).
		Order("created_at desc").
		Find(&warnings).Error
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

// Delete removes a warning. Only an explicit admin revoke reaches this.
func (r *WarningRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Warning{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return service.ErrWarningNotFound
	}
	return nil
}
