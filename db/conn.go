// Package db contains the database connection factory
package db

import (
	"fmt"

	"memoknot/memo-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured backing store and migrates the schema. The handle
// is constructed once here and passed down explicitly; nothing else in the
// app opens connections.
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("storage.type") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("storage.dsn"))
	default:
		dialector = sqlite.Open(viper.GetString("storage.path"))
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", viper.GetString("storage.type"), err)
	}

	err = db.AutoMigrate(model.User{}, model.Memo{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
