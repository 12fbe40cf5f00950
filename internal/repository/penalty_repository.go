package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
)

// PenaltyRepository is the GORM-backed penalty store.
type PenaltyRepository struct {
	db *gorm.DB
}

var _ service.PenaltyStore = (*PenaltyRepository)(nil)

// NewPenaltyRepository creates a new PenaltyRepository.
func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository {
	return &PenaltyRepository{db: db}
}

// GetByID fetches a penalty by its ID.
func (r *PenaltyRepository) GetByID(ctx context.Context, id string) (*models.Penalty, error) {
	var penalty models.Penalty
	err := r.db.WithContext(ctx).First(&penalty, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrPenaltyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &penalty, nil
}

// Create inserts a new penalty.
func (r *PenaltyRepository) Create(ctx context.Context, penalty *models.Penalty) error {
	return r.db.WithContext(ctx).Create(penalty).Error
}

// ListActive returns the user's penalties in force at now.
func (r *PenaltyRepository) ListActive(ctx context.Context, userID string, now time.Time) ([]models.Penalty, error) {
	var penalties []models.Penalty
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND effective_from <= ? AND (effective_until IS NULL OR effective_until > ?)",
			userID, now, now).
		Order("effective_from desc").
		Find(&penalties).Error
	if err != nil {
		return nil, err
	}
	return penalties, nil
}

// Revoke ends a penalty at now. The record stays for the audit trail.
func (r *PenaltyRepository) Revoke(ctx context.Context, id string, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Penalty{}).
		Where("id = ?", id).
		Update("effective_until", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return service.ErrPenaltyNotFound
	}
	return nil
}
