package migrations

import (
	"gorm.io/gorm"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

func init() {
	Register(Migration{
		ID: "002_create_webhook_events",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.WebhookEvent{})
		},
	})
}
