package database

import (
	"fmt"

	"github.com/jobtrackr/jobtrackr/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and runs migrations. Schema changes
// are applied with AutoMigrate on boot.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Application{}, &models.Resume{}); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
