package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"go.uber.org/zap"
)

// VerifyShopifyHMAC checks the X-Shopify-Hmac-Sha256 header against an
// HMAC-SHA256 digest of the raw request body. The comparison is constant
// time. It returns false, never an error, when the secret or header is
// missing; failures are logged without ever including the secret.
func VerifyShopifyHMAC(logger *zap.Logger, secret string, body []byte, header string) bool {
	if secret == "" {
		logger.Error("Webhook verification failed: signing secret not configured")
		return false
	}
	header = strings.TrimSpace(header)
	if header == "" {
		logger.Error("Webhook verification failed: no HMAC signature in headers")
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(header)) {
		logger.Error("Webhook verification failed: HMAC mismatch",
			zap.Int("body_bytes", len(body)),
		)
		return false
	}
	return true
}
