package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateVerificationCode returns a random 32-character hex code used
// in Telegram deep links.
func GenerateVerificationCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
