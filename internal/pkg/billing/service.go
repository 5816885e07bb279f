package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/validateai/ValidateAI/app/models"
	"github.com/validateai/ValidateAI/app/repository"
)

// confirmedSubscriptionTTL is the expiry granted by the synchronous
// confirmation path. The webhook reconciler later overwrites it with the
// provider's authoritative current_end; both paths set absolute values so
// order does not matter.
const confirmedSubscriptionTTL = 30 * 24 * time.Hour

var (
	// ErrMissingSignature marks a webhook delivery without a signature header.
	ErrMissingSignature = errors.New("missing webhook signature")
	// ErrInvalidSignature marks a signature that fails HMAC verification.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrNotConfigured marks an attempt to use the payment system without credentials.
	ErrNotConfigured = errors.New("payment system not configured")
	// ErrUserNotFound marks a payment confirmation for an unknown account.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable marks billing operations attempted without a database.
	ErrStoreUnavailable = errors.New("database not configured")
)

// Service reconciles subscription state from webhook events and brokers
// checkout sessions. Both activation paths funnel into the same idempotent
// ledger mutation.
type Service struct {
	users         repository.UserRepository
	events        repository.SubscriptionEventRepository
	razorpay      *RazorpayClient
	webhookSecret string

	now func() time.Time
}

// NewService builds the billing service from injected collaborators.
func NewService(users repository.UserRepository, events repository.SubscriptionEventRepository, razorpay *RazorpayClient, webhookSecret string) *Service {
	return &Service{
		users:         users,
		events:        events,
		razorpay:      razorpay,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

// HandleWebhook verifies and processes one webhook delivery. Rejected
// deliveries persist nothing. Accepted deliveries are recorded before any
// business processing; business-level gaps (unknown event types, missing
// account metadata, duplicates) are logged and swallowed so the provider
// does not redeliver forever.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader string) error {
	if strings.TrimSpace(signatureHeader) == "" {
		return ErrMissingSignature
	}
	if !VerifyWebhookSignature(rawBody, signatureHeader, s.webhookSecret) {
		log.Println("Invalid webhook signature")
		return ErrInvalidSignature
	}
	if s.users == nil || s.events == nil {
		return ErrStoreUnavailable
	}

	event, err := ParseWebhookEvent(rawBody)
	if err != nil {
		return fmt.Errorf("parse webhook body: %w", err)
	}

	log.Printf("Received Razorpay webhook: %s", event.Event)

	// Audit row first, even for events that turn out to be duplicates.
	record := &models.SubscriptionEvent{
		EventType:      event.Event,
		SubscriptionID: event.SubscriptionID(),
		PayloadJSON:    string(rawBody),
	}
	if err := s.events.Create(record); err != nil {
		return fmt.Errorf("persist webhook event: %w", err)
	}

	switch {
	case event.Event == models.EventSubscriptionActivated:
		return s.applySubscriptionState(ctx, event, true)
	case models.IsDeactivationEvent(event.Event):
		return s.applySubscriptionState(ctx, event, false)
	case event.Event == models.EventPaymentCaptured:
		if event.Payload.Payment != nil {
			p := event.Payload.Payment.Entity
			log.Printf("Payment captured: %s amount=%d", p.ID, p.Amount)
		}
		return s.events.MarkProcessed(event.SubscriptionID(), event.Event, nil)
	default:
		log.Printf("Unhandled webhook event: %s", event.Event)
		return nil
	}
}

// applySubscriptionState runs the ledger mutation for activation and
// deactivation events.
func (s *Service) applySubscriptionState(ctx context.Context, event *WebhookEvent, activate bool) error {
	_ = ctx
	if event.Payload.Subscription == nil {
		log.Printf("Webhook %s carried no subscription entity", event.Event)
		return nil
	}
	entity := event.Payload.Subscription.Entity

	ref := repository.AccountRef{
		UserID:      entity.Notes["user_id"],
		AnonymousID: entity.Notes["anonymous_id"],
	}
	if ref.IsZero() {
		// Without account metadata we record the event and wait for a
		// later, better-formed event instead of guessing.
		log.Println("No user identification in subscription notes")
		return nil
	}

	processed, err := s.events.HasProcessed(entity.ID, event.Event)
	if err != nil {
		return fmt.Errorf("check processed events: %w", err)
	}
	if processed {
		log.Printf("Duplicate %s for subscription %s, ledger untouched", event.Event, entity.ID)
		return nil
	}

	if activate {
		expiresAt := time.Unix(entity.CurrentEnd, 0)
		if err := s.users.ActivateSubscription(ref, entity.ID, expiresAt); err != nil {
			return fmt.Errorf("activate subscription: %w", err)
		}
		log.Printf("Subscription activated for user: %s", refLabel(ref))
	} else {
		if err := s.users.DeactivateSubscription(ref); err != nil {
			return fmt.Errorf("deactivate subscription: %w", err)
		}
		log.Printf("Subscription deactivated for user: %s", refLabel(ref))
	}

	return s.events.MarkProcessed(entity.ID, event.Event, parseUserID(entity.Notes["user_id"]))
}

// CreateCheckout resolves the account and opens a provider-side
// subscription session tagged with both identifiers so webhooks can be
// correlated later.
func (s *Service) CreateCheckout(ctx context.Context, anonymousID string) (*Checkout, error) {
	if s.users == nil {
		return nil, ErrStoreUnavailable
	}
	user, err := s.users.GetOrCreateByAnonymousID(anonymousID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	if !s.razorpay.IsConfigured() {
		return nil, ErrNotConfigured
	}

	sub, err := s.razorpay.CreateSubscription(ctx, map[string]string{
		"user_id":      strconv.FormatUint(uint64(user.ID), 10),
		"anonymous_id": user.AnonymousID,
	})
	if err != nil {
		return nil, err
	}

	return &Checkout{
		SubscriptionID: sub.ID,
		KeyID:          s.razorpay.KeyID,
		Amount:         SubscriptionAmount,
		Currency:       SubscriptionCurrency,
		Name:           SubscriptionName,
		Description:    SubscriptionDesc,
	}, nil
}

// ConfirmPayment verifies the client-reported checkout signature and
// activates the subscription synchronously. The webhook reconciler
// performs the same absolute-value activation, so whichever path runs
// second is a harmless overwrite.
func (s *Service) ConfirmPayment(ctx context.Context, paymentID, subscriptionID, signature, anonymousID string) error {
	_ = ctx
	if !VerifyPaymentSignature(paymentID, subscriptionID, signature, s.razorpay.KeySecret) {
		return ErrInvalidSignature
	}
	if s.users == nil {
		return ErrStoreUnavailable
	}

	user, err := s.users.GetByAnonymousID(anonymousID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	expiresAt := s.now().Add(confirmedSubscriptionTTL)
	ref := repository.AccountRef{UserID: strconv.FormatUint(uint64(user.ID), 10)}
	if err := s.users.ActivateSubscription(ref, subscriptionID, expiresAt); err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	return nil
}

func refLabel(ref repository.AccountRef) string {
	if ref.UserID != "" {
		return ref.UserID
	}
	return ref.AnonymousID
}

func parseUserID(raw string) *uint {
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}
