package models

import "time"

// Contact represents a directed relation from owner to contact user
type Contact struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ContactID string    `json:"contactId" db:"contact_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContactWithUser includes the contact's user information
type ContactWithUser struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Contact   UserSummary `json:"contact"`
	CreatedAt time.Time   `json:"createdAt"`
}
