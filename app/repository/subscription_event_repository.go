package repository

import (
	"gorm.io/gorm"

	"github.com/validateai/ValidateAI/app/models"
)

// subscriptionEventRepository implements the SubscriptionEventRepository interface
type subscriptionEventRepository struct {
	db *gorm.DB
}

// NewSubscriptionEventRepository creates a new subscription event repository instance
func NewSubscriptionEventRepository(db *gorm.DB) SubscriptionEventRepository {
	return &subscriptionEventRepository{db: db}
}

// Create records a webhook delivery. Every accepted delivery gets a row,
// duplicates included; the audit trail is append-only.
func (r *subscriptionEventRepository) Create(event *models.SubscriptionEvent) error {
	return r.db.Create(event).Error
}

// MarkProcessed flags all unprocessed events for a subscription reference
// and event type once the corresponding ledger mutation has been applied.
func (r *subscriptionEventRepository) MarkProcessed(subscriptionID, eventType string, userID *uint) error {
	updates := map[string]interface{}{"processed": true}
	if userID != nil {
		updates["user_id"] = *userID
	}
	return r.db.Model(&models.SubscriptionEvent{}).
		Where("subscription_id = ? AND event_type = ? AND processed = ?", subscriptionID, eventType, false).
		Updates(updates).Error
}

// HasProcessed reports whether an event of this type has already been
// processed for the subscription reference. Used to make redeliveries a
// no-op on the ledger.
func (r *subscriptionEventRepository) HasProcessed(subscriptionID, eventType string) (bool, error) {
	if subscriptionID == "" {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.SubscriptionEvent{}).
		Where("subscription_id = ? AND event_type = ? AND processed = ?", subscriptionID, eventType, true).
		Count(&count).Error
	return count > 0, err
}

// ListBySubscriptionID returns the audit trail for one subscription.
func (r *subscriptionEventRepository) ListBySubscriptionID(subscriptionID string) ([]models.SubscriptionEvent, error) {
	var events []models.SubscriptionEvent
	err := r.db.Where("subscription_id = ?", subscriptionID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
