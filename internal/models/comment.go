package models

import "gorm.io/gorm"

// Comment is a reply attached to a post.
type Comment struct {
	gorm.Model
	PostID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null;index"`
	Content  string `gorm:"not null"`

	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Author User `gorm:"foreignKey:AuthorID"`
}
