package user

import (
	"time"
)

// User represents a registered account.
// PasswordHash must never be serialized or logged.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the identity resolved from a verified bearer token.
type Claims struct {
	UserID string `json:"user_id"`
}
