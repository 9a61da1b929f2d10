package store

import (
	"context"
	"errors"
	"strings"

	"yatube/apperrors"
	"yatube/utils"

	"github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	mysqlDuplicateEntry = 1062
	// sqlite3 reports both unique indexes and primary keys with this text
	sqliteUniqueFailed = "UNIQUE constraint failed"
)

// Store is the only place that talks to gorm, everything above it works with models and Scopes
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) tx(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// dbError maps gorm errors to service errors, what is used in the messages
func dbError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrNotFound, what+" not found", err)
	}
	utils.Logger.Error("DB error", zap.String("op", what), zap.Error(err))
	return apperrors.Wrap(apperrors.ErrDatabase, what, pkgerrors.WithStack(err))
}

// isDuplicate reports a unique index violation, whichever driver produced it
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), sqliteUniqueFailed)
}
