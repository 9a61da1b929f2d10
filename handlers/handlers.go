package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"yatube/apperrors"
	"yatube/auth"
	"yatube/cache"
	"yatube/feed"
	"yatube/follow"
	"yatube/storage"
	"yatube/store"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Error string `json:"error"`
}

type ValidationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type NotFoundResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

var (
	// Predefined responses
	OKResponse           = Response{}
	AccessDeniedResponse = Response{"access denied"}
	InternalResponse     = Response{"internal error"}
)

// Handlers holds everything the HTTP layer needs, persistence is reached through Store only
type Handlers struct {
	Store     *store.Store
	Feed      *feed.Selector
	Follows   *follow.Graph
	Cache     *cache.Cache
	Media     storage.Storage
	ThumbSize uint
}

func New(s *store.Store, c *cache.Cache, media storage.Storage, perPage int, thumbSize uint) *Handlers {
	follows := follow.NewGraph(s)
	return &Handlers{
		Store:     s,
		Feed:      feed.NewSelector(s, follows, perPage),
		Follows:   follows,
		Cache:     c,
		Media:     media,
		ThumbSize: thumbSize,
	}
}

// NotFound is also used as the NoRoute handler
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse{"page not found", c.Request.URL.Path})
}

func respondError(c *gin.Context, err error) {
	switch apperrors.GetErrorCode(err) {
	case apperrors.ErrNotFound:
		NotFound(c)
	case apperrors.ErrAccessDenied:
		auth.RedirectToLogin(c)
	case apperrors.ErrForbidden:
		c.JSON(http.StatusForbidden, AccessDeniedResponse)
	case apperrors.ErrValidation:
		c.JSON(http.StatusBadRequest, ValidationResponse{"validation failed", apperrors.FieldErrors(err)})
	default:
		utils.Logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, InternalResponse)
	}
}

func postIDParam(c *gin.Context) (uint64, bool) {
	id := utils.StringToUInt64(c.Param("post_id"))
	return id, id > 0
}

func postURL(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}
