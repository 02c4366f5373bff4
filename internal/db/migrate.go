package db

import (
	"fmt" // Error wrapping

	"tabungan/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates missing tables, columns and foreign keys. Safe to run on every start.
func Migrate(db *gorm.DB) error {
	// Students first: users and transactions reference them
	if err := db.AutoMigrate(&domain.Student{}, &domain.User{}, &domain.Transaction{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
