package handlers

import (
	"time"

	"yatube/auth"
	"yatube/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "token"
	mediaCacheTime    = 30 * 86400
)

// NewRouter wires the session, auth and cache middleware plus all the routes.
// Extra middleware (cors, gzip, ...) runs before the sessions one.
func NewRouter(h *Handlers, sessionStore sessions.Store, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	_ = router.SetTrustedProxies([]string{})
	router.Use(middleware...)
	router.Use(sessions.Sessions(SessionCookieName, sessionStore))
	router.Use(auth.Middleware(h.Store))
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	Register(router, h)
	return router
}

func Register(router *gin.Engine, h *Handlers) {
	indexCache := &utils.CacheRouter{CacheTime: int(h.Cache.TTL() / time.Second)}
	mediaCache := &utils.CacheRouter{CacheTime: mediaCacheTime, Public: true}
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}

	// Feeds
	router.GET("/", indexCache.Handler(), h.Index)
	router.GET("/group/:slug/", h.GroupPosts)
	router.GET("/profile/:username/", h.Profile)
	authRouter.GET("/follow/", h.FollowIndex)
	authRouter.GET("/profile/:username/follow/", h.ProfileFollow)
	authRouter.GET("/profile/:username/unfollow/", h.ProfileUnfollow)
	// Posts
	router.GET("/posts/:post_id/", h.PostDetail)
	authRouter.GET("/create/", h.PostCreateForm)
	authRouter.POST("/create/", h.PostCreate)
	authRouter.GET("/posts/:post_id/edit/", h.PostEditForm)
	authRouter.POST("/posts/:post_id/edit/", h.PostEdit)
	authRouter.POST("/posts/:post_id/comment/", h.AddComment)
	// Accounts
	router.POST("/auth/signup/", h.UserSignup)
	router.GET("/auth/login/", h.UserLoginForm)
	router.POST("/auth/login/", h.UserLogin)
	router.POST("/auth/logout/", h.UserLogout)
	// Admin
	authRouter.POST("/admin/cache/flush", h.CacheFlush, auth.Admin)
	authRouter.POST("/admin/groups/", h.GroupCreate, auth.Admin)
	authRouter.POST("/admin/groups/:slug/delete", h.GroupDelete, auth.Admin)
	// Uploaded images
	router.GET("/media/*path", mediaCache.Handler(), h.MediaFetch)

	router.NoRoute(NotFound)
}
