package models

import "gorm.io/gorm"

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
}

// IsAdmin reports whether the account has moderation privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
