package migrations

import (
	"gorm.io/gorm"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

func init() {
	Register(Migration{
		ID: "001_create_orders",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.Order{})
		},
	})
}
