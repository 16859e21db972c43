package main

import (
	"log"

	"smarterstarts-be/internal/config"
	"smarterstarts-be/internal/repository/implementation"
	"smarterstarts-be/pkg/database"
)

func main() {
	cfg := config.Load()

	if cfg.Store.PostgresDSN == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Store.PostgresDSN, database.DefaultPoolConfig)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	// gen_random_uuid() lives in pgcrypto before Postgres 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate for consultation_sessions...")
	if err := implementation.AutoMigrate(db); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	log.Println("Migration complete.")
}
