package db

import (
	"strings"

	"yatube/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Init opens MySQL when a DSN is given, SQLite otherwise, and migrates all models
func Init(mysqlDSN, sqliteFile string, debug bool) {
	var dialector gorm.Dialector
	if mysqlDSN != "" {
		dialector = mysql.Open(mysqlDSN)
	} else {
		dialector = sqlite.Open(SQLiteDSN(sqliteFile))
	}
	db, err := Open(dialector, debug)
	if err != nil || db == nil {
		panic(err)
	}
	if err = models.Migrate(db); err != nil {
		panic(err)
	}
	Instance = db
}

func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
}

// SQLiteDSN turns foreign keys on, cascades depend on them
func SQLiteDSN(file string) string {
	if strings.Contains(file, "?") {
		return file + "&_foreign_keys=on"
	}
	return file + "?_foreign_keys=on"
}
