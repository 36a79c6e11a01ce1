package models

import "time"

// VerificationCode links a pending phone verification to a user.
// Codes are single-use and expire an hour after creation.
type VerificationCode struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Code      string    `json:"code" db:"code"`
	Used      bool      `json:"used" db:"used"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
