package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DefaultAdminPassword is what the admin credential resets to on demand.
const DefaultAdminPassword = "admin123"

// HashPassword returns the hex-encoded sha256 of the trimmed password.
// Unsalted: existing credential rows hold bare sha256 hex and verification
// must keep matching them.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(password)))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares a stored hash against the hash of the submitted
// password, both trimmed.
func VerifyPassword(storedHash, password string) bool {
	return strings.TrimSpace(storedHash) == HashPassword(password)
}
