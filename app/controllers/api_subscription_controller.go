package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/validateai/ValidateAI/internal/pkg/billing"
	"github.com/validateai/ValidateAI/internal/pkg/cache"
)

// SubscriptionCreateRequest is the POST /api/subscription/create body.
type SubscriptionCreateRequest struct {
	AnonymousID string `json:"anonymousId" validate:"required,max=100"`
}

// SubscriptionVerifyRequest is the POST /api/subscription/verify body. The
// field names follow the Razorpay checkout callback payload.
type SubscriptionVerifyRequest struct {
	PaymentID      string `json:"razorpay_payment_id" validate:"required"`
	SubscriptionID string `json:"razorpay_subscription_id" validate:"required"`
	Signature      string `json:"razorpay_signature" validate:"required"`
	AnonymousID    string `json:"anonymousId" validate:"required,max=100"`
}

// HandleSubscriptionCreate opens a provider-side checkout session.
func HandleSubscriptionCreate(c *fiber.Ctx) error {
	var req SubscriptionCreateRequest
	if !parseAndValidate(c, &req, "Anonymous ID is required") {
		return nil
	}

	checkout, err := billingService.CreateCheckout(c.UserContext(), req.AnonymousID)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrNotConfigured):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Payment system not configured",
				"message": "Razorpay payment gateway is not set up yet. Please contact support.",
			})
		case errors.Is(err, billing.ErrPlanMissing):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Subscription plan not found",
				"message": "The subscription plan needs to be created in the Razorpay dashboard first.",
				"instructions": []string{
					"Log into your Razorpay dashboard",
					"Go to Subscriptions > Plans",
					"Create a plan with the configured RAZORPAY_PLAN_ID",
					"Set billing cycle: Monthly",
					"Try payment again",
				},
			})
		case errors.Is(err, billing.ErrStoreUnavailable):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		log.Printf("Subscription creation error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Payment system error",
			"message": "Unable to create subscription. Please try again or contact support.",
		})
	}

	return c.JSON(checkout)
}

// HandleSubscriptionVerify confirms a client-reported payment and
// activates the subscription synchronously.
func HandleSubscriptionVerify(c *fiber.Ctx) error {
	var req SubscriptionVerifyRequest
	if !parseAndValidate(c, &req, "Missing required fields") {
		return nil
	}

	err := billingService.ConfirmPayment(c.UserContext(), req.PaymentID, req.SubscriptionID, req.Signature, req.AnonymousID)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment signature"})
		case errors.Is(err, billing.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("Payment verification error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update subscription"})
	}

	_ = cache.Delete(cache.UserStatusKey(req.AnonymousID))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Subscription activated successfully",
	})
}

// HandleSubscriptionWebhook consumes signed provider webhook events. The
// body is passed through raw; signature verification happens over the
// exact bytes received.
func HandleSubscriptionWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("X-Razorpay-Signature")

	err := billingService.HandleWebhook(c.UserContext(), rawBody, signature)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrMissingSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing signature"})
		case errors.Is(err, billing.ErrInvalidSignature):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid signature"})
		}
		log.Printf("Webhook processing error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Webhook processing failed"})
	}

	return c.JSON(fiber.Map{"status": "success"})
}
