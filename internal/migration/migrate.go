package migration

import (
	"github.com/flowlog/flowlog-backend/internal/domain"
	"gorm.io/gorm"
)

// Run creates the three business tables via AutoMigrate.
// Safe to run multiple times (AutoMigrate is idempotent).
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Card{},
		&domain.Backlog{},
		&domain.UserConfig{},
	)
}
