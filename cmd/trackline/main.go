package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/auth"
	"github.com/trackline-dev/trackline/internal/config"
	"github.com/trackline-dev/trackline/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := auth.Init(cfg.JWTSecret, cfg.TokenDuration); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
