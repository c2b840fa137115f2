package models

import "time"

// Like marks that a user liked a post. The composite primary key keeps a user
// from liking the same post twice.
type Like struct {
	PostID    uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time

	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE;"`
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
