package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use((&CacheRouter{CacheTime: CacheNoCache}).Handler())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/cached", (&CacheRouter{CacheTime: 20, Public: true}).Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "no-cache", w.Header().Get("cache-control"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cached", nil))
	assert.Equal(t, "public, max-age=20", w.Header().Get("cache-control"))
}
