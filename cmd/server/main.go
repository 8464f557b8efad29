package main

import (
	"log"

	"github.com/issuedesk/internal/config"
	"github.com/issuedesk/internal/http"
	"github.com/issuedesk/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (optional, won't error if missing)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file successfully")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Environment)

	if cfg.SessionSecret == config.DefaultSessionSecret {
		if cfg.Environment == "production" {
			log.Fatal("SESSION_SECRET must be set in production")
		}
		log.Println("WARNING: SESSION_SECRET not set - using development default")
	}

	log.Printf("Backend URL: %s", cfg.BackendURL)

	// Create HTTP server
	server := http.NewServer(cfg)

	// Start server
	log.Printf("Starting server on %s", cfg.ServerAddress)
	if err := server.Run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
