package handlers

import (
	"net/http"

	"yatube/models"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GroupCreateRequest struct {
	Title       string `form:"title" binding:"notblank,max=200"`
	Slug        string `form:"slug" binding:"required,slug,max=50"`
	Description string `form:"description"`
}

// CacheFlush drops every cached page right away
func (h *Handlers) CacheFlush(c *gin.Context, user *models.User) {
	if err := h.Cache.Flush(c.Request.Context()); err != nil {
		utils.Logger.Error("cache flush", zap.Error(err))
		c.JSON(http.StatusInternalServerError, InternalResponse)
		return
	}
	utils.Logger.Info("cache flushed", zap.String("by", user.Username))
	c.JSON(http.StatusOK, OKResponse)
}

func (h *Handlers) GroupCreate(c *gin.Context, user *models.User) {
	r := GroupCreateRequest{}
	if err := c.ShouldBind(&r); err != nil {
		c.JSON(http.StatusBadRequest, ValidationResponse{"validation failed", utils.ValidationFields(err)})
		return
	}
	group := &models.Group{Title: r.Title, Slug: r.Slug, Description: r.Description}
	if err := h.Store.CreateGroup(c.Request.Context(), group); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// GroupDelete keeps the group's posts, they just lose their group
func (h *Handlers) GroupDelete(c *gin.Context, user *models.User) {
	if err := h.Store.DeleteGroup(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
