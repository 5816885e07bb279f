package models

import "time"

// Razorpay webhook event types the reconciler dispatches on.
const (
	EventSubscriptionActivated = "subscription.activated"
	EventSubscriptionCompleted = "subscription.completed"
	EventSubscriptionCancelled = "subscription.cancelled"
	EventSubscriptionHalted    = "subscription.halted"
	EventPaymentCaptured       = "payment.captured"
)

// SubscriptionEvent stores every accepted webhook delivery, duplicates
// included, for audit and replay. Processed is set once the corresponding
// ledger mutation has been applied.
type SubscriptionEvent struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EventType      string    `gorm:"type:varchar(100);not null;index" json:"event_type"`
	SubscriptionID string    `gorm:"type:varchar(100);index:idx_subscription_events_sub_processed,priority:1" json:"subscription_id"`
	UserID         *uint     `gorm:"default:null" json:"user_id,omitempty"`
	PayloadJSON    string    `gorm:"type:longtext;not null" json:"payload_json"`
	Processed      bool      `gorm:"default:false;index:idx_subscription_events_sub_processed,priority:2" json:"processed"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// IsDeactivationEvent reports whether the event type ends an active
// subscription.
func IsDeactivationEvent(eventType string) bool {
	switch eventType {
	case EventSubscriptionCompleted, EventSubscriptionCancelled, EventSubscriptionHalted:
		return true
	}
	return false
}
