package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/validateai/ValidateAI/app/models"
)

// ErrEmptyAnonymousID is returned when a caller passes a blank identifier.
var ErrEmptyAnonymousID = errors.New("anonymous id is required")

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetOrCreateByAnonymousID resolves an anonymous identifier to its user
// row, creating one on first contact. The insert is an upsert keyed on the
// unique anonymous_id column, so concurrent first contacts for the same
// identifier still produce exactly one row.
func (r *userRepository) GetOrCreateByAnonymousID(anonymousID string) (*models.User, error) {
	id := strings.TrimSpace(anonymousID)
	if id == "" {
		return nil, ErrEmptyAnonymousID
	}

	user := &models.User{AnonymousID: id}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "anonymous_id"}},
		DoNothing: true,
	}).Create(user).Error; err != nil {
		return nil, err
	}

	var stored models.User
	if err := r.db.Where("anonymous_id = ?", id).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetByAnonymousID retrieves a user by their anonymous identifier.
func (r *userRepository) GetByAnonymousID(anonymousID string) (*models.User, error) {
	id := strings.TrimSpace(anonymousID)
	if id == "" {
		return nil, ErrEmptyAnonymousID
	}
	var user models.User
	if err := r.db.Where("anonymous_id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CommitValidation consumes one unit of entitlement after a completed
// validation. Paid users burn a credit (floored at zero) and bump their
// lifetime counter; free users bump the trial counter. Both paths are a
// single UPDATE so concurrent commits on the same row cannot interleave.
func (r *userRepository) CommitValidation(userID uint, isPaid bool) error {
	if userID == 0 {
		return errors.New("user_id is required")
	}
	if isPaid {
		return r.db.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"validation_credits":   gorm.Expr("GREATEST(validation_credits - 1, 0)"),
				"lifetime_validations": gorm.Expr("lifetime_validations + 1"),
			}).Error
	}
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"validation_count": gorm.Expr("validation_count + 1"),
		}).Error
}

// ActivateSubscription marks a user paid. The mutation is an absolute set
// (not an increment), so the webhook reconciler and the synchronous verify
// path may race in either order and converge on the same state.
func (r *userRepository) ActivateSubscription(ref AccountRef, subscriptionID string, expiresAt time.Time) error {
	query, err := r.scopeByRef(ref)
	if err != nil {
		return err
	}
	return query.Updates(map[string]interface{}{
		"is_paid":                  true,
		"subscription_expires":     expiresAt,
		"razorpay_subscription_id": subscriptionID,
	}).Error
}

// DeactivateSubscription clears the paid flag and expiry. Purchased
// credits are deliberately left untouched: deactivation stops future
// billing, it does not claw back credits already bought.
func (r *userRepository) DeactivateSubscription(ref AccountRef) error {
	query, err := r.scopeByRef(ref)
	if err != nil {
		return err
	}
	return query.Updates(map[string]interface{}{
		"is_paid":              false,
		"subscription_expires": nil,
	}).Error
}

func (r *userRepository) scopeByRef(ref AccountRef) (*gorm.DB, error) {
	switch {
	case ref.UserID != "":
		return r.db.Model(&models.User{}).Where("id = ?", ref.UserID), nil
	case ref.AnonymousID != "":
		return r.db.Model(&models.User{}).Where("anonymous_id = ?", ref.AnonymousID), nil
	}
	return nil, errors.New("account ref requires user_id or anonymous_id")
}
