package main

import (
	"book_market/internal/config" // Custom import path (Config)
	"book_market/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN()) // Apply the schema
}
