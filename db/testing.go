package db

import (
	"testing"

	"yatube/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated, private in-memory SQLite database
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("cannot open test DB: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("cannot get test DB handle: %v", err)
	}
	// one connection keeps the in-memory database alive and avoids shared cache table locks
	sqlDB.SetMaxOpenConns(1)
	if err = models.Migrate(db); err != nil {
		t.Fatalf("cannot migrate test DB: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
