// Package feed decides which posts a viewer sees for a scope and in which order.
//
// Four scopes exist: global, group (by slug), profile (by username) and follow (posts of the
// authors the viewer follows). Candidates are every post matching the scope, newest first,
// cut into pages by the paginator.
package feed

import (
	"context"

	"yatube/apperrors"
	"yatube/models"
	"yatube/paginator"
	"yatube/store"
)

type PostStore interface {
	CountPosts(ctx context.Context, scope store.Scope) (int64, error)
	ListPosts(ctx context.Context, scope store.Scope, offset, limit int) ([]models.Post, error)
	GroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	PostByID(ctx context.Context, id uint64) (*models.Post, error)
	ListComments(ctx context.Context, postID uint64) ([]models.Comment, error)
}

type FollowChecker interface {
	IsFollowing(ctx context.Context, user, author *models.User) (bool, error)
}

type Selector struct {
	store   PostStore
	follows FollowChecker
	perPage int
}

func NewSelector(store PostStore, follows FollowChecker, perPage int) *Selector {
	return &Selector{
		store:   store,
		follows: follows,
		perPage: perPage,
	}
}

type Page struct {
	paginator.Page
	Posts []models.Post `json:"posts"`
}

type GroupPage struct {
	Page
	Group *models.Group `json:"group"`
}

type ProfilePage struct {
	Page
	Author    *models.User `json:"author"`
	Following bool         `json:"following"`
}

type PostDetail struct {
	Post             *models.Post     `json:"post"`
	Comments         []models.Comment `json:"comments"`
	AuthorPostsCount int64            `json:"author_posts_count"`
}

func (s *Selector) page(ctx context.Context, scope store.Scope, rawPage string) (*Page, error) {
	count, err := s.store.CountPosts(ctx, scope)
	if err != nil {
		return nil, err
	}
	pg := paginator.New(count, s.perPage).Page(rawPage)
	posts := []models.Post{}
	if count > 0 {
		posts, err = s.store.ListPosts(ctx, scope, pg.Offset(), pg.Limit())
		if err != nil {
			return nil, err
		}
	}
	return &Page{Page: pg, Posts: posts}, nil
}

func (s *Selector) Global(ctx context.Context, rawPage string) (*Page, error) {
	return s.page(ctx, store.Global(), rawPage)
}

func (s *Selector) Group(ctx context.Context, slug, rawPage string) (*GroupPage, error) {
	group, err := s.store.GroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, store.ByGroup(group.ID), rawPage)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Page: *page, Group: group}, nil
}

// Profile also reports whether viewer (nil when anonymous) follows the author
func (s *Selector) Profile(ctx context.Context, viewer *models.User, username, rawPage string) (*ProfilePage, error) {
	author, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, store.ByAuthor(author.ID), rawPage)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.IsFollowing(ctx, viewer, author)
	if err != nil {
		return nil, err
	}
	return &ProfilePage{Page: *page, Author: author, Following: following}, nil
}

func (s *Selector) Follow(ctx context.Context, viewer *models.User, rawPage string) (*Page, error) {
	if !viewer.IsAuthenticated() {
		return nil, apperrors.New(apperrors.ErrAccessDenied, "login required")
	}
	return s.page(ctx, store.ByFollower(viewer.ID), rawPage)
}

// Post returns a single post with its comments, newest first
func (s *Selector) Post(ctx context.Context, id uint64) (*PostDetail, error) {
	post, err := s.store.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountPosts(ctx, store.ByAuthor(post.UserID))
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostsCount: count}, nil
}
