package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS         = ""            // e.g. "example.com,example2.com"
	MYSQL_DSN           = ""            // MySQL will be used if this is set
	SQLITE_FILE         = "yatube.db"   // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS        = "0.0.0.0:8080"
	DEBUG_MODE          = true
	LOG_LEVEL           = "info"
	SESSION_KEY         = "this is a long key" // override in production
	POSTS_PER_PAGE      = 10
	INDEX_CACHE_SECONDS = 20
	// Redis is used as the index page cache if REDIS_ADDR is set, otherwise an in-process map is used
	REDIS_ADDR     = ""
	REDIS_PASSWORD = ""
	// Post images are stored on disk under MEDIA_DIR unless S3_BUCKET is configured
	MEDIA_DIR   = "media"
	S3_BUCKET   = ""
	S3_REGION   = "us-east-1"
	S3_ENDPOINT = "" // for S3 compatible services
	S3_KEY      = ""
	S3_SECRET   = ""
	THUMB_SIZE  = 960 // longest side of the stored post image, in pixels
)

func init() {
	// A missing .env file is fine, the environment is used as is
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("POSTS_PER_PAGE", &POSTS_PER_PAGE)
	readEnvInt("INDEX_CACHE_SECONDS", &INDEX_CACHE_SECONDS)
	readEnvString("REDIS_ADDR", &REDIS_ADDR)
	readEnvString("REDIS_PASSWORD", &REDIS_PASSWORD)
	readEnvString("MEDIA_DIR", &MEDIA_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)

	if MYSQL_DSN != "" {
		if err := ValidateMySQLDSN(MYSQL_DSN); err != nil {
			log.Fatalf("Invalid MYSQL_DSN: %v", err)
		}
	}
	if POSTS_PER_PAGE < 1 {
		POSTS_PER_PAGE = 10
	}
}

// ValidateMySQLDSN makes sure the DSN can be parsed by the MySQL driver before gorm tries to connect
func ValidateMySQLDSN(dsn string) error {
	_, err := mysql.ParseDSN(dsn)
	return err
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
