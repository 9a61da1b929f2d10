package store

import (
	"context"

	"yatube/models"

	"gorm.io/gorm/clause"
)

// CreateFollow inserts the edge unless it already exists. Uniqueness is decided by the
// (user_id, author_id) unique index in a single statement, a conflict counts as success.
func (s *Store) CreateFollow(ctx context.Context, userID, authorID uint64) (created bool, err error) {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	result := s.tx(ctx).
		Omit("User", "Author").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if isDuplicate(result.Error) {
		return false, nil
	}
	if result.Error != nil {
		return false, dbError(result.Error, "create follow")
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) DeleteFollow(ctx context.Context, userID, authorID uint64) (deleted bool, err error) {
	result := s.tx(ctx).Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if result.Error != nil {
		return false, dbError(result.Error, "delete follow")
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) FollowExists(ctx context.Context, userID, authorID uint64) (bool, error) {
	var count int64
	err := s.tx(ctx).Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error
	if err != nil {
		return false, dbError(err, "check follow")
	}
	return count > 0, nil
}

func (s *Store) FollowedAuthors(ctx context.Context, userID uint64) ([]models.User, error) {
	authors := []models.User{}
	err := s.tx(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.username").
		Find(&authors).Error
	if err != nil {
		return nil, dbError(err, "followed authors")
	}
	return authors, nil
}

func (s *Store) CountFollowers(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	if err := s.tx(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, dbError(err, "count followers")
	}
	return count, nil
}
