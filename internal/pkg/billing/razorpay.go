package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/validateai/ValidateAI/internal/pkg/env"
)

const (
	defaultRazorpayBaseURL = "https://api.razorpay.com/v1"
	defaultPlanID          = "plan_validateai_pro"

	// SubscriptionAmount is the display amount in paise (₹14.00).
	SubscriptionAmount   = 1400
	SubscriptionCurrency = "INR"
	SubscriptionName     = "ValidateAI Pro"
	SubscriptionDesc     = "Unlimited startup idea validations"
)

// ErrPlanMissing marks a provider rejection because the subscription plan
// has not been created in the Razorpay dashboard yet.
var ErrPlanMissing = errors.New("razorpay subscription plan does not exist")

// RazorpayClient talks to the Razorpay REST API.
type RazorpayClient struct {
	KeyID     string
	KeySecret string
	PlanID    string
	BaseURL   string

	HTTPClient *http.Client
}

// Subscription is the provider-side checkout session handle.
type Subscription struct {
	ID string `json:"id"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// NewRazorpayClientFromEnv builds a client from RAZORPAY_* env keys.
func NewRazorpayClientFromEnv() *RazorpayClient {
	return &RazorpayClient{
		KeyID:     strings.TrimSpace(env.GetEnv("RAZORPAY_KEY_ID", "")),
		KeySecret: strings.TrimSpace(env.GetEnv("RAZORPAY_KEY_SECRET", "")),
		PlanID:    strings.TrimSpace(env.GetEnv("RAZORPAY_PLAN_ID", defaultPlanID)),
		BaseURL:   strings.TrimSpace(env.GetEnv("RAZORPAY_BASE_URL", defaultRazorpayBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// IsConfigured reports whether real credentials are present. The literal
// "test_key" placeholder counts as unconfigured.
func (c *RazorpayClient) IsConfigured() bool {
	if c.KeyID == "" || c.KeySecret == "" {
		return false
	}
	return c.KeyID != "test_key" && c.KeySecret != "test_key"
}

// CreateSubscription creates a provider-side subscription session. The
// notes travel back in webhook payloads and let the reconciler correlate
// the event with a local account.
func (c *RazorpayClient) CreateSubscription(ctx context.Context, notes map[string]string) (*Subscription, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"plan_id":         c.PlanID,
		"customer_notify": 1,
		"total_count":     12, // 12 months
		"notes":           notes,
	})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/subscriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rzpErr razorpayError
		if json.Unmarshal(body, &rzpErr) == nil &&
			resp.StatusCode == http.StatusBadRequest &&
			strings.Contains(rzpErr.Error.Description, "does not exist") {
			return nil, fmt.Errorf("%w: %s", ErrPlanMissing, rzpErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay subscription create failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var sub Subscription
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sub.ID) == "" {
		return nil, errors.New("razorpay returned empty subscription id")
	}
	return &sub, nil
}
