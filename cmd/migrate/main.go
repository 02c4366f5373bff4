package main

import (
	"tabungan/internal/config" // Custom import path (Config)
	"tabungan/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration and seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	if err := db.Seed(gdb, cfg.SeedDemo); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
}
