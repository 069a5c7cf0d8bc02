package migrations

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID      string
	Migrate func(tx *gorm.DB) error
}

type MigrationRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MigrationID string `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

var registry []Migration

func Register(m Migration) {
	registry = append(registry, m)
}

// Run applies every registered migration not yet recorded, each in its
// own transaction together with its schema_migrations row.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range registry {
		var count int64
		if err := db.Model(&MigrationRecord{}).Where("migration_id = ?", m.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %s: %w", m.ID, err)
		}
		if count > 0 {
			continue
		}

		slog.Info("running migration", "migration", m.ID)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Migrate(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{MigrationID: m.ID}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", m.ID, err)
		}
		slog.Info("completed migration", "migration", m.ID)
	}
	return nil
}
