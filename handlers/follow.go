package handlers

import (
	"net/http"

	"yatube/models"

	"github.com/gin-gonic/gin"
)

// FollowIndex is the feed of authors the current user follows
func (h *Handlers) FollowIndex(c *gin.Context, user *models.User) {
	page, err := h.Feed.Follow(c.Request.Context(), user, c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) ProfileFollow(c *gin.Context, user *models.User) {
	author, err := h.Store.UserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err = h.Follows.Follow(c.Request.Context(), user, author); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

func (h *Handlers) ProfileUnfollow(c *gin.Context, user *models.User) {
	author, err := h.Store.UserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err = h.Follows.Unfollow(c.Request.Context(), user, author); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}
