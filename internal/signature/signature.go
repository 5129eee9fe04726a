// Package signature implements the HMAC-SHA256 signing scheme shared by the
// gateway's webhook dispatcher and the subscriber that verifies deliveries.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Header carries the hex digest on every webhook delivery.
const Header = "X-Signature"

// Sign returns the lowercase hex HMAC-SHA256 digest of body under secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether candidate is the digest of body under secret.
// The comparison is constant time: a mismatch must not reveal how many
// leading bytes of the digest were correct.
func Verify(body []byte, secret, candidate string) bool {
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(candidate))
}
