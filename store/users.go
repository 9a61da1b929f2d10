package store

import (
	"context"
	"strings"

	"yatube/apperrors"
	"yatube/models"
)

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := s.tx(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, dbError(err, "user")
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint64) (*models.User, error) {
	user := models.User{}
	if err := s.tx(ctx).First(&user, id).Error; err != nil {
		return nil, dbError(err, "user")
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, username, name, email, password string) (*models.User, error) {
	user, err := models.UserCreate(s.tx(ctx), username, name, email, password)
	if isDuplicate(err) {
		return nil, apperrors.Validation(map[string]string{"username": "a user with that username already exists"})
	}
	if err != nil {
		return nil, dbError(err, "create user")
	}
	return &user, nil
}

func (s *Store) Login(ctx context.Context, username, password string) (*models.User, bool) {
	user, ok := models.UserLogin(s.tx(ctx), strings.TrimSpace(username), password)
	if !ok {
		return nil, false
	}
	return &user, true
}

// DeleteUser removes the user together with their posts, comments and follow edges (FK cascades)
func (s *Store) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.tx(ctx).Delete(&models.User{}, id).Error; err != nil {
		return dbError(err, "delete user")
	}
	return nil
}
