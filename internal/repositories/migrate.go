package repositories

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
		&models.Notification{},
	)
}
