package main

import (
	"log"
	"net/http"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/logger"
	"rollout_tracker/internal/middleware"
	"rollout_tracker/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database. Schema must already be migrated (cmd/migrate).
	config.InitDB()

	// Setup Gin router (recovery + request logging wired inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
