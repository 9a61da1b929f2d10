package feed

import (
	"context"
	"fmt"
	"testing"

	"yatube/apperrors"
	"yatube/db"
	"yatube/follow"
	"yatube/models"
	"yatube/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) CountPosts(ctx context.Context, scope store.Scope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostStore) ListPosts(ctx context.Context, scope store.Scope, offset, limit int) ([]models.Post, error) {
	args := m.Called(ctx, scope, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostStore) GroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockPostStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockPostStore) PostByID(ctx context.Context, id uint64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostStore) ListComments(ctx context.Context, postID uint64) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

type MockFollowChecker struct {
	mock.Mock
}

func (m *MockFollowChecker) IsFollowing(ctx context.Context, user, author *models.User) (bool, error) {
	args := m.Called(ctx, user, author)
	return args.Bool(0), args.Error(1)
}

var _ PostStore = (*store.Store)(nil)
var _ FollowChecker = (*follow.Graph)(nil)

func makePosts(n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{ID: uint64(n - i), Text: fmt.Sprintf("post %d", n-i)}
	}
	return posts
}

func TestGlobalPagination(t *testing.T) {
	m := new(MockPostStore)
	s := NewSelector(m, new(MockFollowChecker), 10)
	ctx := context.Background()
	all := makePosts(13)

	m.On("CountPosts", ctx, store.Global()).Return(int64(13), nil)
	m.On("ListPosts", ctx, store.Global(), 0, 10).Return(all[:10], nil).Once()
	m.On("ListPosts", ctx, store.Global(), 10, 10).Return(all[10:], nil).Twice()

	page, err := s.Global(ctx, "")
	require.NoError(t, err)
	assert.Len(t, page.Posts, 10)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 2, page.NumPages)

	page, err = s.Global(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, page.Posts, 3)

	// past the end clamps to the last page
	page, err = s.Global(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Len(t, page.Posts, 3)
	m.AssertExpectations(t)
}

func TestEmptyScopeSkipsList(t *testing.T) {
	m := new(MockPostStore)
	s := NewSelector(m, new(MockFollowChecker), 10)
	ctx := context.Background()
	m.On("CountPosts", ctx, store.Global()).Return(int64(0), nil)

	page, err := s.Global(ctx, "3")
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.NotNil(t, page.Posts)
	assert.Equal(t, 1, page.NumPages)
	m.AssertNotCalled(t, "ListPosts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupNotFound(t *testing.T) {
	m := new(MockPostStore)
	s := NewSelector(m, new(MockFollowChecker), 10)
	ctx := context.Background()
	m.On("GroupBySlug", ctx, "missing").Return(nil, apperrors.New(apperrors.ErrNotFound, "group not found"))

	_, err := s.Group(ctx, "missing", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestProfileFollowingFlag(t *testing.T) {
	m := new(MockPostStore)
	f := new(MockFollowChecker)
	s := NewSelector(m, f, 10)
	ctx := context.Background()
	author := &models.User{ID: 7, Username: "author"}
	viewer := &models.User{ID: 8, Username: "viewer"}

	m.On("UserByUsername", ctx, "author").Return(author, nil)
	m.On("CountPosts", ctx, store.ByAuthor(7)).Return(int64(1), nil)
	m.On("ListPosts", ctx, store.ByAuthor(7), 0, 10).Return(makePosts(1), nil)
	f.On("IsFollowing", ctx, viewer, author).Return(true, nil)
	f.On("IsFollowing", ctx, (*models.User)(nil), author).Return(false, nil)

	page, err := s.Profile(ctx, viewer, "author", "")
	require.NoError(t, err)
	assert.True(t, page.Following)
	assert.Equal(t, author, page.Author)
	assert.Len(t, page.Posts, 1)

	page, err = s.Profile(ctx, nil, "author", "")
	require.NoError(t, err)
	assert.False(t, page.Following)

	m.On("UserByUsername", ctx, "ghost").Return(nil, apperrors.New(apperrors.ErrNotFound, "user not found"))
	_, err = s.Profile(ctx, viewer, "ghost", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestFollowRequiresLogin(t *testing.T) {
	m := new(MockPostStore)
	s := NewSelector(m, new(MockFollowChecker), 10)

	_, err := s.Follow(context.Background(), nil, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessDenied))
	_, err = s.Follow(context.Background(), &models.User{}, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessDenied))
	m.AssertNotCalled(t, "CountPosts", mock.Anything, mock.Anything)
}

// The remaining tests run the whole chain against SQLite

type world struct {
	ctx      context.Context
	store    *store.Store
	graph    *follow.Graph
	selector *Selector
}

func newWorld(t *testing.T) *world {
	t.Helper()
	s := store.New(db.NewTestDB(t))
	g := follow.NewGraph(s)
	return &world{
		ctx:      context.Background(),
		store:    s,
		graph:    g,
		selector: NewSelector(s, g, 10),
	}
}

func (w *world) user(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := w.store.CreateUser(w.ctx, username, "", "", "password")
	require.NoError(t, err)
	return u
}

func (w *world) post(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: author.ID, Text: text}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, w.store.CreatePost(w.ctx, p))
	return p
}

func TestGroupScenario(t *testing.T) {
	w := newWorld(t)
	auth := w.user(t, "auth")
	group := &models.Group{Title: "Test group", Slug: "test-slug", Description: "d"}
	require.NoError(t, w.store.CreateGroup(w.ctx, group))
	empty := &models.Group{Title: "Empty group", Slug: "test-slug-2", Description: "d"}
	require.NoError(t, w.store.CreateGroup(w.ctx, empty))

	w.post(t, auth, group, "with group")
	w.post(t, auth, nil, "without group")
	last := w.post(t, auth, group, "with group and image")

	global, err := w.selector.Global(w.ctx, "")
	require.NoError(t, err)
	assert.Len(t, global.Posts, 3)
	assert.Equal(t, last.ID, global.Posts[0].ID)

	groupPage, err := w.selector.Group(w.ctx, "test-slug", "")
	require.NoError(t, err)
	assert.Len(t, groupPage.Posts, 2)
	assert.Equal(t, "test-slug", groupPage.Group.Slug)
	for _, p := range groupPage.Posts {
		require.NotNil(t, p.GroupID)
		assert.Equal(t, group.ID, *p.GroupID)
	}

	profile, err := w.selector.Profile(w.ctx, auth, "auth", "")
	require.NoError(t, err)
	assert.Len(t, profile.Posts, 3)
	assert.False(t, profile.Following)

	emptyPage, err := w.selector.Group(w.ctx, "test-slug-2", "")
	require.NoError(t, err)
	assert.Empty(t, emptyPage.Posts)
}

func TestThirteenPostsPaginate(t *testing.T) {
	w := newWorld(t)
	auth := w.user(t, "auth")
	group := &models.Group{Title: "Test group", Slug: "test-slug"}
	require.NoError(t, w.store.CreateGroup(w.ctx, group))
	for i := 0; i < 13; i++ {
		w.post(t, auth, group, fmt.Sprintf("Post %d", i))
	}

	pages := map[string]func(raw string) (*Page, error){
		"global": func(raw string) (*Page, error) { return w.selector.Global(w.ctx, raw) },
		"group": func(raw string) (*Page, error) {
			p, err := w.selector.Group(w.ctx, "test-slug", raw)
			if err != nil {
				return nil, err
			}
			return &p.Page, nil
		},
		"profile": func(raw string) (*Page, error) {
			p, err := w.selector.Profile(w.ctx, nil, "auth", raw)
			if err != nil {
				return nil, err
			}
			return &p.Page, nil
		},
	}
	for name, get := range pages {
		t.Run(name, func(t *testing.T) {
			first, err := get("")
			require.NoError(t, err)
			assert.Len(t, first.Posts, 10)
			second, err := get("2")
			require.NoError(t, err)
			assert.Len(t, second.Posts, 3)
			// no post shows up on both pages
			seen := map[uint64]bool{}
			for _, p := range append(first.Posts, second.Posts...) {
				assert.False(t, seen[p.ID])
				seen[p.ID] = true
			}
			assert.Len(t, seen, 13)
		})
	}
}

func TestFollowFeedIsolation(t *testing.T) {
	w := newWorld(t)
	follower := w.user(t, "follower")
	author := w.user(t, "author")
	unfollower := w.user(t, "unfollower")
	w.post(t, follower, nil, "own post")
	authorPost := w.post(t, author, nil, "author post")

	page, err := w.selector.Follow(w.ctx, follower, "")
	require.NoError(t, err)
	assert.Empty(t, page.Posts)

	_, err = w.graph.Follow(w.ctx, follower, author)
	require.NoError(t, err)

	page, err = w.selector.Follow(w.ctx, follower, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, authorPost.ID, page.Posts[0].ID)

	page, err = w.selector.Follow(w.ctx, unfollower, "")
	require.NoError(t, err)
	assert.Empty(t, page.Posts)

	profile, err := w.selector.Profile(w.ctx, follower, "author", "")
	require.NoError(t, err)
	assert.True(t, profile.Following)
	profile, err = w.selector.Profile(w.ctx, unfollower, "author", "")
	require.NoError(t, err)
	assert.False(t, profile.Following)
}

func TestPostDetail(t *testing.T) {
	w := newWorld(t)
	auth := w.user(t, "auth")
	reader := w.user(t, "reader")
	p := w.post(t, auth, nil, "post")
	w.post(t, auth, nil, "another")
	require.NoError(t, w.store.CreateComment(w.ctx, &models.Comment{UserID: reader.ID, PostID: p.ID, Text: "nice", CreatedAt: 1}))
	require.NoError(t, w.store.CreateComment(w.ctx, &models.Comment{UserID: auth.ID, PostID: p.ID, Text: "thanks", CreatedAt: 2}))

	detail, err := w.selector.Post(w.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "post", detail.Post.Text)
	assert.Equal(t, int64(2), detail.AuthorPostsCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "thanks", detail.Comments[0].Text)

	_, err = w.selector.Post(w.ctx, 9999)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
