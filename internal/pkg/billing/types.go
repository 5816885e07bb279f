package billing

import "encoding/json"

// WebhookEvent is the parsed shape of a Razorpay webhook delivery.
type WebhookEvent struct {
	Event   string         `json:"event"`
	Payload WebhookPayload `json:"payload"`
}

// WebhookPayload wraps the entity envelopes Razorpay nests per type.
type WebhookPayload struct {
	Subscription *struct {
		Entity SubscriptionEntity `json:"entity"`
	} `json:"subscription,omitempty"`
	Payment *struct {
		Entity PaymentEntity `json:"entity"`
	} `json:"payment,omitempty"`
}

// SubscriptionEntity is the provider subscription state embedded in
// subscription.* events. Notes carry the account correlation ids set at
// checkout creation.
type SubscriptionEntity struct {
	ID         string            `json:"id"`
	Status     string            `json:"status"`
	CurrentEnd int64             `json:"current_end"` // unix seconds
	Notes      map[string]string `json:"notes"`
}

// PaymentEntity is the payment state embedded in payment.* events.
type PaymentEntity struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	SubscriptionID string `json:"subscription_id"`
}

// ParseWebhookEvent decodes a raw webhook body.
func ParseWebhookEvent(rawBody []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// SubscriptionID extracts the subscription reference from whichever entity
// the payload carries.
func (e *WebhookEvent) SubscriptionID() string {
	if e.Payload.Subscription != nil {
		return e.Payload.Subscription.Entity.ID
	}
	if e.Payload.Payment != nil {
		return e.Payload.Payment.Entity.SubscriptionID
	}
	return ""
}

// Checkout is the client-facing description of a created payment session.
type Checkout struct {
	SubscriptionID string `json:"subscriptionId"`
	KeyID          string `json:"razorpayKeyId"`
	Amount         int    `json:"amount"`
	Currency       string `json:"currency"`
	Name           string `json:"name"`
	Description    string `json:"description"`
}
