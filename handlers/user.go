package handlers

import (
	"net/http"
	"strings"

	"yatube/auth"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SignupRequest struct {
	Username string `form:"username" binding:"required,max=150"`
	Name     string `form:"name" binding:"max=150"`
	Email    string `form:"email" binding:"omitempty,email"`
	Password string `form:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type LoginInfo struct {
	Next string `json:"next"`
}

func (h *Handlers) UserSignup(c *gin.Context) {
	r := SignupRequest{}
	if err := c.ShouldBind(&r); err != nil {
		c.JSON(http.StatusBadRequest, ValidationResponse{"validation failed", utils.ValidationFields(err)})
		return
	}
	user, err := h.Store.CreateUser(c.Request.Context(), strings.TrimSpace(r.Username), r.Name, r.Email, r.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err = auth.LoadSession(c).LoginUser(user); err != nil {
		respondError(c, err)
		return
	}
	utils.Logger.Info("user signed up", zap.String("username", user.Username))
	c.Redirect(http.StatusFound, "/")
}

// UserLoginForm tells the client where it will be sent after logging in
func (h *Handlers) UserLoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, LoginInfo{Next: safeNext(c.Query("next"))})
}

func (h *Handlers) UserLogin(c *gin.Context) {
	r := LoginRequest{}
	if err := c.ShouldBind(&r); err != nil {
		c.JSON(http.StatusBadRequest, ValidationResponse{"validation failed", utils.ValidationFields(err)})
		return
	}
	if r.Next == "" {
		r.Next = c.Query("next")
	}
	user, ok := h.Store.Login(c.Request.Context(), r.Username, r.Password)
	if !ok {
		c.JSON(http.StatusBadRequest, ValidationResponse{"validation failed", map[string]string{
			"form": "Please enter a correct username and password",
		}})
		return
	}
	if err := auth.LoadSession(c).LoginUser(user); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, safeNext(r.Next))
}

func (h *Handlers) UserLogout(c *gin.Context) {
	auth.LoadSession(c).LogoutUser()
	c.Redirect(http.StatusFound, "/")
}

// safeNext only allows local redirects
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
