package store

import (
	"context"

	"yatube/apperrors"
	"yatube/models"
)

func (s *Store) GroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	group := models.Group{}
	if err := s.tx(ctx).First(&group, "slug = ?", slug).Error; err != nil {
		return nil, dbError(err, "group")
	}
	return &group, nil
}

func (s *Store) GroupByID(ctx context.Context, id uint64) (*models.Group, error) {
	group := models.Group{}
	if err := s.tx(ctx).First(&group, id).Error; err != nil {
		return nil, dbError(err, "group")
	}
	return &group, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	if err := s.tx(ctx).Order("title").Find(&groups).Error; err != nil {
		return nil, dbError(err, "list groups")
	}
	return groups, nil
}

func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	err := s.tx(ctx).Create(group).Error
	if isDuplicate(err) {
		return apperrors.Validation(map[string]string{"slug": "group with this slug already exists"})
	}
	if err != nil {
		return dbError(err, "create group")
	}
	return nil
}

// DeleteGroup leaves the group's posts in place, their group_id becomes NULL
func (s *Store) DeleteGroup(ctx context.Context, slug string) error {
	result := s.tx(ctx).Where("slug = ?", slug).Delete(&models.Group{})
	if result.Error != nil {
		return dbError(result.Error, "delete group")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrNotFound, "group not found")
	}
	return nil
}
