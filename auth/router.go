package auth

import (
	"net/http"
	"net/url"

	"yatube/models"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/auth/login/"

// User is authenticated and passed all the requirements
type HandlerFunc func(c *gin.Context, user *models.User)

type Requirement func(user *models.User) bool

func Admin(user *models.User) bool {
	return user.IsAdmin
}

// Router is a wrapper that adds auth checks + passes the viewer to the handler
type Router struct {
	Base gin.IRoutes
}

// LoginURL points to the login page and carries the page to come back to
func LoginURL(next string) string {
	return LoginPath + "?" + url.Values{"next": {next}}.Encode()
}

// RedirectToLogin sends anonymous users to the login page
func RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
	c.Abort()
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []Requirement) {
	user := Viewer(c)
	if !user.IsAuthenticated() {
		RedirectToLogin(c)
		return
	}
	for _, r := range required {
		if !r(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
	}
	handler(c, user)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}
