package models

import "gorm.io/gorm"

// Post is a piece of content published by a user.
type Post struct {
	gorm.Model
	AuthorID uint   `gorm:"not null;index"`
	Content  string `gorm:"not null"`

	Author User `gorm:"foreignKey:AuthorID"`
}
