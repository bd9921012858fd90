package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashEmail returns the lowercase hex SHA-256 digest of the normalised email.
// The digest is the lookup key for accounts and pending registrations, so two
// spellings that normalise to the same address always hash identically.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}
