package store

import (
	"context"

	"yatube/models"

	"gorm.io/gorm"
)

func (s *Store) scoped(ctx context.Context, scope Scope) *gorm.DB {
	tx := s.tx(ctx).Model(&models.Post{})
	switch scope.Kind {
	case ScopeGroup:
		tx = tx.Where("posts.group_id = ?", scope.GroupID)
	case ScopeProfile:
		tx = tx.Where("posts.user_id = ?", scope.AuthorID)
	case ScopeFollow:
		followed := s.tx(ctx).Model(&models.Follow{}).Select("author_id").Where("user_id = ?", scope.ViewerID)
		tx = tx.Where("posts.user_id IN (?)", followed)
	}
	return tx
}

func (s *Store) CountPosts(ctx context.Context, scope Scope) (int64, error) {
	var count int64
	if err := s.scoped(ctx, scope).Count(&count).Error; err != nil {
		return 0, dbError(err, "count posts")
	}
	return count, nil
}

// ListPosts returns the scope's posts newest first, with author and group loaded
func (s *Store) ListPosts(ctx context.Context, scope Scope, offset, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.scoped(ctx, scope).
		Preload("User").
		Preload("Group").
		Order(models.PostOrder).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, dbError(err, "list posts")
	}
	return posts, nil
}

func (s *Store) PostByID(ctx context.Context, id uint64) (*models.Post, error) {
	post := models.Post{}
	if err := s.tx(ctx).Preload("User").Preload("Group").First(&post, id).Error; err != nil {
		return nil, dbError(err, "post")
	}
	return &post, nil
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	if err := s.tx(ctx).Omit("User", "Group").Create(post).Error; err != nil {
		return dbError(err, "create post")
	}
	return nil
}

// UpdatePost only touches the editable columns, created_at stays as it was
func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	err := s.tx(ctx).Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err != nil {
		return dbError(err, "update post")
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id uint64) error {
	if err := s.tx(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return dbError(err, "delete post")
	}
	return nil
}
