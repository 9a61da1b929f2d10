package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheRouter sets the cache-control header for the routes it wraps.
// Server side caching of page contents is done by the cache package, this only talks to browsers/proxies.
type CacheRouter struct {
	CacheTime int // seconds, defaults to CacheNoCache = 0
	Public    bool
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			if cr.CacheTime == CacheNoCache {
				c.Header("cache-control", "no-cache")
			} else {
				visibility := "private"
				if cr.Public {
					visibility = "public"
				}
				c.Header("cache-control", visibility+", max-age="+strconv.Itoa(cr.CacheTime))
			}
		}
		c.Next()
	}
}
