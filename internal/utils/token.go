package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns an opaque 20-byte hex-encoded token for the
// password-reset flow.
func GenerateResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
