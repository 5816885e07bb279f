package repository

import (
	"time"

	"github.com/validateai/ValidateAI/app/models"
)

// AccountRef identifies a user either by internal ID (preferred) or by the
// client-generated anonymous identifier. Webhook payloads may carry both;
// the internal ID wins when present.
type AccountRef struct {
	UserID      string
	AnonymousID string
}

// IsZero reports whether the ref carries no usable identification.
func (r AccountRef) IsZero() bool {
	return r.UserID == "" && r.AnonymousID == ""
}

// UserRepository defines user persistence plus the atomic entitlement
// ledger mutations. All mutating operations are single UPDATE statements;
// read-check-then-write sequences on counters are not allowed here.
type UserRepository interface {
	GetOrCreateByAnonymousID(anonymousID string) (*models.User, error)
	GetByAnonymousID(anonymousID string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	CommitValidation(userID uint, isPaid bool) error
	ActivateSubscription(ref AccountRef, subscriptionID string, expiresAt time.Time) error
	DeactivateSubscription(ref AccountRef) error
}

// ValidationRepository defines validation history persistence.
type ValidationRepository interface {
	Create(validation *models.Validation) error
	ListByUserID(userID uint, limit int) ([]models.Validation, error)
	CountByUserID(userID uint) (int64, error)
}

// SubscriptionEventRepository defines webhook event audit persistence.
type SubscriptionEventRepository interface {
	Create(event *models.SubscriptionEvent) error
	MarkProcessed(subscriptionID, eventType string, userID *uint) error
	HasProcessed(subscriptionID, eventType string) (bool, error)
	ListBySubscriptionID(subscriptionID string) ([]models.SubscriptionEvent, error)
}
