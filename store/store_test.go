package store

import (
	"context"
	"testing"

	"yatube/apperrors"
	"yatube/db"
	"yatube/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *Store
	ctx   context.Context
	auth  *models.User
	other *models.User
	group *models.Group
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: New(db.NewTestDB(t)),
		ctx:   context.Background(),
	}
	var err error
	f.auth, err = f.store.CreateUser(f.ctx, "auth", "", "auth@example.com", "secret")
	require.NoError(t, err)
	f.other, err = f.store.CreateUser(f.ctx, "other", "Other Person", "other@example.com", "secret")
	require.NoError(t, err)
	f.group = &models.Group{Title: "Test group", Slug: "test-slug", Description: "Test description"}
	require.NoError(t, f.store.CreateGroup(f.ctx, f.group))
	return f
}

func (f *fixture) post(t *testing.T, author *models.User, group *models.Group, createdAt int64, text string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: author.ID, Text: text, CreatedAt: createdAt}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, f.store.CreatePost(f.ctx, p))
	return p
}

func postIDs(posts []models.Post) []uint64 {
	ids := []uint64{}
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestListPostsOrdering(t *testing.T) {
	f := newFixture(t)
	old := f.post(t, f.auth, nil, 100, "old")
	tieFirst := f.post(t, f.auth, nil, 200, "tie first")
	tieSecond := f.post(t, f.other, nil, 200, "tie second")
	newest := f.post(t, f.other, f.group, 300, "newest")

	posts, err := f.store.ListPosts(f.ctx, Global(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{newest.ID, tieSecond.ID, tieFirst.ID, old.ID}, postIDs(posts))
	assert.Equal(t, "other", posts[0].User.Username)
	require.NotNil(t, posts[0].Group)
	assert.Equal(t, "test-slug", posts[0].Group.Slug)
	assert.Nil(t, posts[1].Group)
}

func TestScopes(t *testing.T) {
	f := newFixture(t)
	g1 := f.post(t, f.auth, f.group, 1, "with group")
	f.post(t, f.auth, nil, 2, "without group")
	g2 := f.post(t, f.auth, f.group, 3, "with group and image")
	o := f.post(t, f.other, nil, 4, "by other")

	count, err := f.store.CountPosts(f.ctx, Global())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	groupPosts, err := f.store.ListPosts(f.ctx, ByGroup(f.group.ID), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{g2.ID, g1.ID}, postIDs(groupPosts))

	count, err = f.store.CountPosts(f.ctx, ByAuthor(f.auth.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// nothing followed yet
	count, err = f.store.CountPosts(f.ctx, ByFollower(f.auth.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = f.store.CreateFollow(f.ctx, f.auth.ID, f.other.ID)
	require.NoError(t, err)
	followPosts, err := f.store.ListPosts(f.ctx, ByFollower(f.auth.ID), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{o.ID}, postIDs(followPosts))
}

func TestListPostsOffsetLimit(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 13; i++ {
		f.post(t, f.auth, f.group, int64(i), "post")
	}
	page, err := f.store.ListPosts(f.ctx, Global(), 10, 10)
	require.NoError(t, err)
	assert.Len(t, page, 3)
}

func TestLookupsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.GroupBySlug(f.ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	_, err = f.store.UserByUsername(f.ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	_, err = f.store.PostByID(f.ctx, 12345)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	group, err := f.store.GroupBySlug(f.ctx, "test-slug")
	require.NoError(t, err)
	assert.Equal(t, f.group.ID, group.ID)
}

func TestCreateDuplicates(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.CreateUser(f.ctx, "auth", "", "", "x")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, apperrors.FieldErrors(err), "username")

	err = f.store.CreateGroup(f.ctx, &models.Group{Title: "again", Slug: "test-slug"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	user, ok := f.store.Login(f.ctx, "auth", "secret")
	require.True(t, ok)
	assert.Equal(t, f.auth.ID, user.ID)
	_, ok = f.store.Login(f.ctx, "auth", "wrong")
	assert.False(t, ok)
	_, ok = f.store.Login(f.ctx, "nobody", "secret")
	assert.False(t, ok)
}

func TestCreateFollowIsIdempotent(t *testing.T) {
	f := newFixture(t)
	created, err := f.store.CreateFollow(f.ctx, f.auth.ID, f.other.ID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = f.store.CreateFollow(f.ctx, f.auth.ID, f.other.ID)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := f.store.CountFollowers(f.ctx, f.other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	exists, err := f.store.FollowExists(f.ctx, f.auth.ID, f.other.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	// edges are directed
	exists, err = f.store.FollowExists(f.ctx, f.other.ID, f.auth.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	authors, err := f.store.FollowedAuthors(f.ctx, f.auth.ID)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "other", authors[0].Username)

	deleted, err := f.store.DeleteFollow(f.ctx, f.auth.ID, f.other.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = f.store.DeleteFollow(f.ctx, f.auth.ID, f.other.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdatePostKeepsCreatedAt(t *testing.T) {
	f := newFixture(t)
	p := f.post(t, f.auth, f.group, 1000, "original")
	p.Text = "edited"
	p.GroupID = nil
	p.CreatedAt = 5000
	require.NoError(t, f.store.UpdatePost(f.ctx, p))

	got, err := f.store.PostByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Nil(t, got.GroupID)
	assert.Equal(t, int64(1000), got.CreatedAt)
}

func TestDeleteGroupKeepsPosts(t *testing.T) {
	f := newFixture(t)
	p := f.post(t, f.auth, f.group, 1, "in group")
	require.NoError(t, f.store.DeleteGroup(f.ctx, "test-slug"))

	got, err := f.store.PostByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Nil(t, got.Group)

	err = f.store.DeleteGroup(f.ctx, "test-slug")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	mine := f.post(t, f.auth, nil, 1, "mine")
	theirs := f.post(t, f.other, nil, 2, "theirs")
	require.NoError(t, f.store.CreateComment(f.ctx, &models.Comment{UserID: f.other.ID, PostID: mine.ID, Text: "on mine"}))
	require.NoError(t, f.store.CreateComment(f.ctx, &models.Comment{UserID: f.auth.ID, PostID: theirs.ID, Text: "by me"}))
	_, err := f.store.CreateFollow(f.ctx, f.other.ID, f.auth.ID)
	require.NoError(t, err)

	// deleting a post deletes its comments
	require.NoError(t, f.store.DeletePost(f.ctx, theirs.ID))
	comments, err := f.store.ListComments(f.ctx, theirs.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// deleting an author deletes posts, comments on them and follow edges
	require.NoError(t, f.store.DeleteUser(f.ctx, f.auth.ID))
	_, err = f.store.PostByID(f.ctx, mine.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	comments, err = f.store.ListComments(f.ctx, mine.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
	authors, err := f.store.FollowedAuthors(f.ctx, f.other.ID)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestListCommentsNewestFirst(t *testing.T) {
	f := newFixture(t)
	p := f.post(t, f.auth, nil, 1, "post")
	first := &models.Comment{UserID: f.other.ID, PostID: p.ID, Text: "first", CreatedAt: 10}
	second := &models.Comment{UserID: f.auth.ID, PostID: p.ID, Text: "second", CreatedAt: 20}
	require.NoError(t, f.store.CreateComment(f.ctx, first))
	require.NoError(t, f.store.CreateComment(f.ctx, second))

	comments, err := f.store.ListComments(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "auth", comments[0].User.Username)
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "index", Global().String())
	assert.Equal(t, "group:3", ByGroup(3).String())
	assert.Equal(t, "profile:4", ByAuthor(4).String())
	assert.Equal(t, "follow:5", ByFollower(5).String())
}
