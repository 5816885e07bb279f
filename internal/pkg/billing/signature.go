package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyWebhookSignature checks the X-Razorpay-Signature header against an
// HMAC-SHA256 over the raw webhook body. Comparison is constant time.
func VerifyWebhookSignature(payload []byte, signatureHeader, webhookSecret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

// PaymentSignaturePayload is the string Razorpay signs for the client-side
// checkout callback.
func PaymentSignaturePayload(paymentID, subscriptionID string) string {
	return paymentID + "|" + subscriptionID
}

// VerifyPaymentSignature checks the client-reported payment signature
// against an HMAC-SHA256 over paymentID|subscriptionID keyed with the
// Razorpay key secret.
func VerifyPaymentSignature(paymentID, subscriptionID, signature, keySecret string) bool {
	return VerifyWebhookSignature(
		[]byte(PaymentSignaturePayload(paymentID, subscriptionID)),
		signature,
		keySecret,
	)
}
