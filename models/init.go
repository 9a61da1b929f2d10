package models

import "gorm.io/gorm"

// Migrate creates/updates all tables, parents first
func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
}
