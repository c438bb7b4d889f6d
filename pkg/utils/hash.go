package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Fingerprint returns a short stable token for personal data such as phone
// numbers or emails so they can be correlated in logs without being stored.
// Case and surrounding whitespace do not change the result.
func Fingerprint(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	return HashString(input)[:12]
}
