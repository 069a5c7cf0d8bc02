package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

type attemptKey struct {
	CheckoutID string `json:"checkoutId"`
	Attempt    int    `json:"attempt"`
}

// Compute derives the processor idempotency key for one attempt of a
// checkout. The same attempt always maps to the same key; a retry gets a
// new one.
func Compute(checkoutID string, attempt int) string {
	data, _ := json.Marshal(attemptKey{CheckoutID: checkoutID, Attempt: attempt})
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
