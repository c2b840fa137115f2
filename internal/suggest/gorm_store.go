package suggest

import (
	"context"

	"mingle/backend/internal/models"

	"gorm.io/gorm"
)

// GormStore implements Store against the relational schema.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

type rankedRow struct {
	models.User
	FriendsCount int64
}

const friendCountSelect = "users.*, COUNT(r.from_user_id) AS friends_count"

func (s *GormStore) friendCountQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Select(friendCountSelect).
		Joins("LEFT JOIN user_relations r ON r.status = ? AND (r.from_user_id = users.id OR r.to_user_id = users.id)", models.StatusAccepted).
		Group("users.id")
}

func (s *GormStore) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Raw(
		"SELECT CASE WHEN from_user_id = ? THEN to_user_id ELSE from_user_id END FROM user_relations WHERE status = ? AND (from_user_id = ? OR to_user_id = ?)",
		userID, models.StatusAccepted, userID, userID,
	).Scan(&ids).Error
	return ids, err
}

func (s *GormStore) PendingSentIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.UserRelation{}).
		Where("from_user_id = ? AND status = ?", userID, models.StatusPending).
		Pluck("to_user_id", &ids).Error
	return ids, err
}

func (s *GormStore) FriendsOfUsers(ctx context.Context, userIDs []uint) ([]uint, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := s.db.WithContext(ctx).Raw(
		"SELECT CASE WHEN from_user_id IN ? THEN to_user_id ELSE from_user_id END FROM user_relations WHERE status = ? AND (from_user_id IN ? OR to_user_id IN ?)",
		userIDs, models.StatusAccepted, userIDs, userIDs,
	).Scan(&ids).Error
	return ids, err
}

func (s *GormStore) LikersOfAuthoredPosts(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.author_id = ? AND posts.deleted_at IS NULL", authorID).
		Order("likes.created_at").
		Pluck("likes.user_id", &ids).Error
	return ids, err
}

func (s *GormStore) AuthorsOfCommentedPosts(ctx context.Context, commenterID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("comments.author_id = ? AND posts.deleted_at IS NULL", commenterID).
		Order("comments.created_at").
		Pluck("posts.author_id", &ids).Error
	return ids, err
}

func (s *GormStore) UsersWithFriendCounts(ctx context.Context, userIDs []uint) (map[uint]RankedUser, error) {
	if len(userIDs) == 0 {
		return map[uint]RankedUser{}, nil
	}
	var rows []rankedRow
	err := s.friendCountQuery(ctx).Where("users.id IN ?", userIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]RankedUser, len(rows))
	for _, row := range rows {
		out[row.User.ID] = RankedUser{User: row.User, FriendsCount: row.FriendsCount}
	}
	return out, nil
}

func (s *GormStore) MostConnectedUsers(ctx context.Context, excludeIDs []uint, offset, limit int) ([]RankedUser, error) {
	query := s.friendCountQuery(ctx).Order("friends_count DESC, users.id ASC")
	if len(excludeIDs) > 0 {
		query = query.Where("users.id NOT IN ?", excludeIDs)
	}
	var rows []rankedRow
	err := query.Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]RankedUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, RankedUser{User: row.User, FriendsCount: row.FriendsCount})
	}
	return out, nil
}
