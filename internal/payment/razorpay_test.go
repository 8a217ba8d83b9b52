package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	t.Parallel()

	const secret = "test-key-secret"
	sig := SignPayment("order_ABC123", "pay_XYZ789", secret)
	assert.NotEmpty(t, sig)

	assert.True(t, VerifyPaymentSignature("order_ABC123", "pay_XYZ789", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_ABC123", "pay_XYZ789", sig, "other-secret"))
	assert.False(t, VerifyPaymentSignature("order_OTHER", "pay_XYZ789", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_ABC123", "pay_XYZ789", "deadbeef", secret))
}

func TestVerifyWebhookSignature(t *testing.T) {
	t.Parallel()

	const secret = "webhook-secret"
	body := []byte(`{"event":"payment.captured"}`)

	mac := SignPayment("", "", secret) // distinct scheme, must not match body HMAC
	assert.False(t, VerifyWebhookSignature(body, mac, secret))

	// Signing the body directly round-trips.
	valid := signBody(body, secret)
	assert.True(t, VerifyWebhookSignature(body, valid, secret))
	assert.False(t, VerifyWebhookSignature([]byte(`{"event":"tampered"}`), valid, secret))
}
