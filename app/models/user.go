package models

import (
	"time"
)

// FreeValidationLimit is the number of validations an unpaid user gets
// before the paywall kicks in.
const FreeValidationLimit = 3

// User is the durable account record behind a client-generated anonymous
// identifier. Users are created on first contact and never deleted.
type User struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	AnonymousID            string     `gorm:"uniqueIndex;type:varchar(100);not null" json:"anonymous_id" validate:"required,max=100"`
	IsPaid                 bool       `gorm:"default:false;index" json:"is_paid"`
	SubscriptionExpires    *time.Time `gorm:"type:timestamp;default:null" json:"subscription_expires,omitempty"`
	RazorpaySubscriptionID string     `gorm:"type:varchar(100);default:null;index" json:"razorpay_subscription_id,omitempty"`
	ValidationCount        int        `gorm:"not null;default:0" json:"validation_count"`
	ValidationCredits      int        `gorm:"not null;default:0" json:"validation_credits"`
	LifetimeValidations    int        `gorm:"not null;default:0" json:"lifetime_validations"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
