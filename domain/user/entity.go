package user

import (
	"time"
)

// User represents a registered account. PasswordHash is never exposed
// through any API response.
type User struct {
	ID            string  `gorm:"primaryKey;size:36"`
	Email         string  `gorm:"uniqueIndex;not null;size:255"`
	Name          *string `gorm:"size:100"`
	PasswordHash  string  `gorm:"not null;type:text"`
	EmailVerified bool    `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the identity extracted from a verified access token.
// Tokens carry only the subject; anything else requires a store lookup.
type Claims struct {
	UserID string `json:"user_id"`
}

// AccessToken is an issued bearer credential with its metadata.
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}
