package models

import "time"

// RelationStatus is the state of the edge between two users.
type RelationStatus string

const (
	// StatusPending is a friend request sent by FromUser that ToUser has not
	// answered yet.
	StatusPending RelationStatus = "pending"

	// StatusAccepted means the two users are friends. A single accepted row
	// represents the friendship for both directions.
	StatusAccepted RelationStatus = "accepted"
)

// UserRelation is one edge in the social graph, keyed by the ordered pair
// (FromUserID, ToUserID). A unique index on (LEAST(from_user_id, to_user_id),
// GREATEST(from_user_id, to_user_id)), created alongside the migrations,
// guarantees at most one row per unordered pair, so every transition (accept,
// decline, unfriend) is a single-row write and the relation can never be
// observed half-updated.
type UserRelation struct {
	FromUserID uint           `gorm:"primaryKey"`
	ToUserID   uint           `gorm:"primaryKey"`
	Status     RelationStatus `gorm:"type:varchar(20);not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
