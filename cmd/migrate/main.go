package main

import (
	"log"

	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/repository/implementation"
	"ai-workspace-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Connect using the existing GORM helpers
	var db *gorm.DB
	var err error
	switch cfg.Store.Driver {
	case database.DriverPostgres:
		if cfg.Store.Connection == "" {
			log.Fatal("Error: STORE_CONNECTION is not set")
		}
		db, err = database.NewGormDBFromDSN(cfg.Store.Connection)
	case database.DriverSQLite:
		db, err = database.NewSQLiteDB(cfg.Store.Connection)
	default:
		log.Fatalf("Error: STORE_DRIVER %q has no schema to migrate (use postgres or sqlite)", cfg.Store.Driver)
	}
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate
	log.Printf("Running AutoMigrate on %s...", cfg.Store.Driver)
	if err := implementation.Migrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	log.Println("Migration completed successfully")
}
