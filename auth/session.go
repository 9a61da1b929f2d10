package auth

import (
	"context"

	"yatube/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIdKey = "id"
	viewerKey = "viewer"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

func (s *Session) UserID() uint64 {
	id, _ := s.Get(userIdKey).(uint64)
	return id
}

type UserLoader interface {
	UserByID(ctx context.Context, id uint64) (*models.User, error)
}

// Middleware resolves the session's user once per request, see Viewer
func Middleware(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := LoadSession(c).UserID(); id != 0 {
			if user, err := users.UserByID(c.Request.Context(), id); err == nil {
				SetViewer(c, user)
			}
		}
		c.Next()
	}
}

// Viewer is the logged in user or nil for anonymous requests
func Viewer(c *gin.Context) *models.User {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func SetViewer(c *gin.Context, user *models.User) {
	c.Set(viewerKey, user)
}
