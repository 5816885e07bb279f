package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test_secret"
	body := []byte(`{"event":"subscription.activated"}`)

	if !VerifyWebhookSignature(body, sign(body, secret), secret) {
		t.Fatal("expected valid signature to verify")
	}
	if !VerifyWebhookSignature(body, strings.ToUpper(sign(body, secret)), secret) {
		t.Fatal("expected uppercase hex signature to verify")
	}
	if VerifyWebhookSignature([]byte(`{"event":"tampered"}`), sign(body, secret), secret) {
		t.Fatal("expected tampered body to fail verification")
	}
	if VerifyWebhookSignature(body, sign(body, "wrong_secret"), secret) {
		t.Fatal("expected signature from wrong secret to fail")
	}
	if VerifyWebhookSignature(body, "", secret) {
		t.Fatal("expected empty signature to fail")
	}
	if VerifyWebhookSignature(body, sign(body, secret), "") {
		t.Fatal("expected empty secret to fail")
	}
	if VerifyWebhookSignature(body, "not-hex-at-all", secret) {
		t.Fatal("expected non-hex signature to fail")
	}
}

func TestPaymentSignaturePayload(t *testing.T) {
	if got := PaymentSignaturePayload("pay_123", "sub_456"); got != "pay_123|sub_456" {
		t.Fatalf("PaymentSignaturePayload = %q", got)
	}
}

func TestVerifyPaymentSignature(t *testing.T) {
	keySecret := "rzp_secret"
	valid := sign([]byte("pay_123|sub_456"), keySecret)

	if !VerifyPaymentSignature("pay_123", "sub_456", valid, keySecret) {
		t.Fatal("expected valid payment signature to verify")
	}
	if VerifyPaymentSignature("pay_999", "sub_456", valid, keySecret) {
		t.Fatal("expected mismatched payment id to fail")
	}
	if VerifyPaymentSignature("pay_123", "sub_999", valid, keySecret) {
		t.Fatal("expected mismatched subscription id to fail")
	}
}
