package store

import (
	"context"

	"yatube/models"
)

func (s *Store) ListComments(ctx context.Context, postID uint64) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.tx(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order(models.CommentOrder).
		Find(&comments).Error
	if err != nil {
		return nil, dbError(err, "list comments")
	}
	return comments, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := s.tx(ctx).Omit("User", "Post").Create(comment).Error; err != nil {
		return dbError(err, "create comment")
	}
	return nil
}
