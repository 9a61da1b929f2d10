package main

import (
	"context"
	"log"
	"strings"
	"time"

	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/handlers"
	"yatube/storage"
	"yatube/store"
	"yatube/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionExpirationTime = 365 * 86400 // 1 year
	redisKeyPrefix        = "yatube:"
)

func main() {
	utils.InitLogger(config.LOG_LEVEL, config.DEBUG_MODE)
	defer utils.Logger.Sync()
	if err := utils.RegisterValidators(); err != nil {
		log.Fatalf("Validators: %v", err)
	}
	db.Init(config.MYSQL_DSN, config.SQLITE_FILE, config.DEBUG_MODE)
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(
		store.New(db.Instance),
		cache.New(newCacheBackend(), time.Duration(config.INDEX_CACHE_SECONDS)*time.Second),
		newMediaStorage(),
		config.POSTS_PER_PAGE,
		uint(config.THUMB_SIZE),
	)

	middleware := []gin.HandlerFunc{gin.Logger()}
	if config.DEBUG_MODE {
		middleware = append(middleware, utils.ErrorLogMiddleware)
	}
	middleware = append(middleware, cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		middleware = append(middleware, gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/"})))
	}

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router := handlers.NewRouter(h, cookieStore, middleware...)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}

// newCacheBackend uses Redis when it is configured and reachable, the in-process map otherwise
func newCacheBackend() cache.Backend {
	if config.REDIS_ADDR == "" {
		return cache.NewMemoryBackend()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.DialRedis(ctx, config.REDIS_ADDR, config.REDIS_PASSWORD)
	if err != nil {
		utils.Logger.Warn("redis unavailable, using memory cache", zap.String("addr", config.REDIS_ADDR), zap.Error(err))
		return cache.NewMemoryBackend()
	}
	utils.Logger.Info("using redis cache", zap.String("addr", config.REDIS_ADDR))
	return cache.NewRedisBackend(client, redisKeyPrefix)
}

func newMediaStorage() storage.Storage {
	if config.S3_BUCKET == "" {
		return storage.NewDiskStorage(config.MEDIA_DIR)
	}
	s3Storage, err := storage.NewS3Storage(storage.S3Config{
		Bucket:   config.S3_BUCKET,
		Region:   config.S3_REGION,
		Endpoint: config.S3_ENDPOINT,
		Key:      config.S3_KEY,
		Secret:   config.S3_SECRET,
	})
	if err != nil {
		log.Fatalf("S3 storage: %v", err)
	}
	return s3Storage
}
