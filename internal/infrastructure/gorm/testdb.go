package gormdb

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/gorm/migrations"
)

// NewTestConnection opens a private in-memory sqlite database with every
// migration applied. The pool is pinned to one connection so all queries
// see the same database.
func NewTestConnection() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrations.Run(db); err != nil {
		return nil, err
	}
	return db, nil
}
