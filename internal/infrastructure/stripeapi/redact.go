package stripeapi

import "strings"

// RedactSecret keeps enough of a client secret or key to correlate logs.
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if i := strings.Index(secret, "_secret_"); i >= 0 {
		return secret[:i+len("_secret_")] + "****"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:8] + "****"
}

// Prefix returns the first three characters of a configured key, or
// "missing".
func Prefix(key string) string {
	if key == "" {
		return "missing"
	}
	if len(key) < 3 {
		return key
	}
	return key[:3]
}

// IntentIDFromClientSecret extracts "pi_x" from "pi_x_secret_y".
func IntentIDFromClientSecret(clientSecret string) string {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found {
		return ""
	}
	return id
}
