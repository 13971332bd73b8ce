package main

import (
	"log"

	"rollout_tracker/internal/config"
)

// Applies the versioned schema migrations and exits. Run once per deploy,
// before starting the server; request-serving code never touches the schema.
func main() {
	config.InitDB()

	if err := config.Migrations(config.DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("✅ Schema migrated")
}
