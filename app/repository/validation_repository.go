package repository

import (
	"gorm.io/gorm"

	"github.com/validateai/ValidateAI/app/models"
)

// validationRepository implements the ValidationRepository interface
type validationRepository struct {
	db *gorm.DB
}

// NewValidationRepository creates a new validation repository instance
func NewValidationRepository(db *gorm.DB) ValidationRepository {
	return &validationRepository{db: db}
}

// Create appends a validation record. Records are immutable once written.
func (r *validationRepository) Create(validation *models.Validation) error {
	return r.db.Create(validation).Error
}

// ListByUserID returns the most recent validations for a user.
func (r *validationRepository) ListByUserID(userID uint, limit int) ([]models.Validation, error) {
	var validations []models.Validation
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&validations).Error
	return validations, err
}

// CountByUserID returns the total number of validations for a user.
func (r *validationRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Validation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
