package relation

import (
	"context"
	"errors"

	"mingle/backend/internal/models"

	"gorm.io/gorm"
)

// GormStore implements Store on the user_relations table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) RelationExists(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.UserRelation{}).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) CreatePending(ctx context.Context, from, to uint) error {
	rel := models.UserRelation{
		FromUserID: from,
		ToUserID:   to,
		Status:     models.StatusPending,
	}
	err := s.db.WithContext(ctx).Create(&rel).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Two crossed requests can both pass the RelationExists check; the
		// pair index catches the loser here.
		return ErrAlreadyExists
	}
	return err
}

func (s *GormStore) AcceptPending(ctx context.Context, from, to uint) (bool, error) {
	// Conditional update: a concurrent decline or cancel makes this a no-op
	// instead of resurrecting the row.
	result := s.db.WithContext(ctx).
		Model(&models.UserRelation{}).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", from, to, models.StatusPending).
		Update("status", models.StatusAccepted)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) DeletePending(ctx context.Context, from, to uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", from, to, models.StatusPending).
		Delete(&models.UserRelation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) DeleteAccepted(ctx context.Context, a, b uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND status = ?",
			a, b, b, a, models.StatusAccepted).
		Delete(&models.UserRelation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
