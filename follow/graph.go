// Package follow maintains the directed "user follows author" edges.
//
// Follow and Unfollow are safe to repeat: an existing edge is not duplicated, a missing
// one is not an error, and following yourself does nothing.
package follow

import (
	"context"

	"yatube/apperrors"
	"yatube/models"
	"yatube/utils"

	"go.uber.org/zap"
)

type EdgeStore interface {
	// CreateFollow must be atomic with respect to the (user, author) uniqueness
	CreateFollow(ctx context.Context, userID, authorID uint64) (created bool, err error)
	DeleteFollow(ctx context.Context, userID, authorID uint64) (deleted bool, err error)
	FollowExists(ctx context.Context, userID, authorID uint64) (bool, error)
	FollowedAuthors(ctx context.Context, userID uint64) ([]models.User, error)
}

type Graph struct {
	store EdgeStore
}

func NewGraph(store EdgeStore) *Graph {
	return &Graph{store: store}
}

var errNoAuthor = apperrors.New(apperrors.ErrNotFound, "author not found")

func requireUsers(user, author *models.User) error {
	if !user.IsAuthenticated() {
		return apperrors.New(apperrors.ErrAccessDenied, "login required")
	}
	if author == nil || author.ID == 0 {
		return errNoAuthor
	}
	return nil
}

// Follow returns whether the edge exists afterwards, false only for a self follow
func (g *Graph) Follow(ctx context.Context, user, author *models.User) (bool, error) {
	if err := requireUsers(user, author); err != nil {
		return false, err
	}
	if user.ID == author.ID {
		return false, nil
	}
	created, err := g.store.CreateFollow(ctx, user.ID, author.ID)
	if err != nil {
		return false, err
	}
	if created {
		utils.Logger.Info("follow", zap.Uint64("user_id", user.ID), zap.Uint64("author_id", author.ID))
	}
	return true, nil
}

func (g *Graph) Unfollow(ctx context.Context, user, author *models.User) error {
	if err := requireUsers(user, author); err != nil {
		return err
	}
	deleted, err := g.store.DeleteFollow(ctx, user.ID, author.ID)
	if err != nil {
		return err
	}
	if deleted {
		utils.Logger.Info("unfollow", zap.Uint64("user_id", user.ID), zap.Uint64("author_id", author.ID))
	}
	return nil
}

// IsFollowing is false for the anonymous viewer
func (g *Graph) IsFollowing(ctx context.Context, user, author *models.User) (bool, error) {
	if !user.IsAuthenticated() || author == nil || user.ID == author.ID {
		return false, nil
	}
	return g.store.FollowExists(ctx, user.ID, author.ID)
}

func (g *Graph) FollowedAuthors(ctx context.Context, user *models.User) ([]models.User, error) {
	if !user.IsAuthenticated() {
		return nil, apperrors.New(apperrors.ErrAccessDenied, "login required")
	}
	return g.store.FollowedAuthors(ctx, user.ID)
}
