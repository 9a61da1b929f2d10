package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"yatube/apperrors"
	"yatube/auth"
	"yatube/models"
	"yatube/paginator"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IndexCacheKey prefixes the cached global feed pages, one entry per requested page number
const IndexCacheKey = "index_page"

type PostForm struct {
	Text  string `form:"text" binding:"notblank"`
	Group uint64 `form:"group"`
}

type PostFormInfo struct {
	IsEdit bool           `json:"is_edit"`
	Post   *models.Post   `json:"post,omitempty"`
	Groups []models.Group `json:"groups"`
}

type CommentForm struct {
	Text string `form:"text" binding:"notblank"`
}

// Index serves the global feed, rendered pages are cached for the cache TTL
func (h *Handlers) Index(c *gin.Context) {
	rawPage := c.Query("page")
	key := IndexCacheKey + "?page=" + strconv.Itoa(paginator.ParseNumber(rawPage))
	body, err := h.Cache.GetOrCompute(c.Request.Context(), key, func(ctx context.Context) ([]byte, error) {
		page, err := h.Feed.Global(ctx, rawPage)
		if err != nil {
			return nil, err
		}
		return json.Marshal(page)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handlers) GroupPosts(c *gin.Context) {
	page, err := h.Feed.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) Profile(c *gin.Context) {
	page, err := h.Feed.Profile(c.Request.Context(), auth.Viewer(c), c.Param("username"), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) PostDetail(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		NotFound(c)
		return
	}
	detail, err := h.Feed.Post(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handlers) PostCreateForm(c *gin.Context, user *models.User) {
	h.postForm(c, nil)
}

// PostCreate saves a new post of the current user and redirects to their profile
func (h *Handlers) PostCreate(c *gin.Context, user *models.User) {
	post := &models.Post{UserID: user.ID}
	if err := h.bindPost(c, post); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.CreatePost(c.Request.Context(), post); err != nil {
		h.dropImage(post.Image)
		respondError(c, err)
		return
	}
	utils.Logger.Info("post created", zap.Uint64("post", post.ID), zap.Uint64("user", user.ID))
	c.Redirect(http.StatusFound, profileURL(user.Username))
}

func (h *Handlers) PostEditForm(c *gin.Context, user *models.User) {
	post, ok := h.ownPost(c, user)
	if !ok {
		return
	}
	h.postForm(c, post)
}

// PostEdit only lets the author change a post, everyone else is sent back to the post
func (h *Handlers) PostEdit(c *gin.Context, user *models.User) {
	post, ok := h.ownPost(c, user)
	if !ok {
		return
	}
	oldImage := post.Image
	if err := h.bindPost(c, post); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.UpdatePost(c.Request.Context(), post); err != nil {
		if post.Image != oldImage {
			h.dropImage(post.Image)
		}
		respondError(c, err)
		return
	}
	if post.Image != oldImage {
		h.dropImage(oldImage)
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

// AddComment never saves an invalid comment, the user lands on the post either way
func (h *Handlers) AddComment(c *gin.Context, user *models.User) {
	id, ok := postIDParam(c)
	if !ok {
		NotFound(c)
		return
	}
	post, err := h.Store.PostByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	form := CommentForm{}
	if err = c.ShouldBind(&form); err == nil {
		comment := &models.Comment{UserID: user.ID, PostID: post.ID, Text: form.Text}
		if err = h.Store.CreateComment(c.Request.Context(), comment); err != nil {
			respondError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

func (h *Handlers) postForm(c *gin.Context, post *models.Post) {
	groups, err := h.Store.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PostFormInfo{IsEdit: post != nil, Post: post, Groups: groups})
}

// ownPost writes the response itself when the post can't be edited by user
func (h *Handlers) ownPost(c *gin.Context, user *models.User) (*models.Post, bool) {
	id, ok := postIDParam(c)
	if !ok {
		NotFound(c)
		return nil, false
	}
	post, err := h.Store.PostByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !post.IsOwnedBy(user) {
		c.Redirect(http.StatusFound, postURL(post.ID))
		return nil, false
	}
	return post, true
}

// bindPost validates the form and applies it to post, a new image is stored right away
func (h *Handlers) bindPost(c *gin.Context, post *models.Post) error {
	form := PostForm{}
	if err := c.ShouldBind(&form); err != nil {
		return apperrors.Validation(utils.ValidationFields(err))
	}
	post.Text = form.Text
	post.GroupID = nil
	post.Group = nil
	if form.Group != 0 {
		group, err := h.Store.GroupByID(c.Request.Context(), form.Group)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validation(map[string]string{"group": "Select a valid choice"})
		} else if err != nil {
			return err
		}
		post.GroupID = &group.ID
	}
	if fileHeader, err := c.FormFile("image"); err == nil {
		path, err := h.saveImage(fileHeader)
		if err != nil {
			return err
		}
		post.Image = path
	}
	return nil
}

func (h *Handlers) saveImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.Validation(map[string]string{"image": "Upload a valid image"})
	}
	defer file.Close()
	return storage.SavePostImage(h.Media, file, h.ThumbSize)
}

func (h *Handlers) dropImage(path string) {
	if path == "" {
		return
	}
	if err := h.Media.Delete(path); err != nil {
		utils.Logger.Warn("deleting image", zap.String("path", path), zap.Error(err))
	}
}
