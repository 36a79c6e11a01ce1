package models

import "time"

// User represents a registered user
type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"` // E.164 normalized
	Password       string    `json:"-" db:"password_hash"`
	PhoneVerified  bool      `json:"phoneVerified" db:"phone_verified"`
	TelegramUserID *string   `json:"telegramUserId,omitempty" db:"telegram_user_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// UserResponse is what we send to clients (without sensitive data)
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PhoneVerified bool      `json:"phoneVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Phone:         u.Phone,
		PhoneVerified: u.PhoneVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// UserSummary is the compact sender representation embedded in messages
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ToSummary converts User to UserSummary
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Email: u.Email,
		Phone: u.Phone,
	}
}
