package main

import (
	"log"
	"os"
	"strings"

	"hr_ats_backend/internal/database"
	"hr_ats_backend/internal/router"
	"hr_ats_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; the defaults below run the app with no config.
	_ = godotenv.Load()

	// Initialize Logger
	utils.InitLogger()

	// Open the applicant database and bring its schema up to date. Schema
	// application runs on every start and is idempotent.
	dbPath := utils.Getenv("ATS_DB_PATH", "hr_ats.db")
	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := database.ApplySchema(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	utils.LogInfo("Database ready", map[string]interface{}{"path": dbPath})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration for the local desktop frontend
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	engine.Use(cors.New(config))

	// Setup all application routes
	router.Setup(engine, db)

	// The server binds loopback only: this is the backend of a single-user
	// desktop tool, not a network service.
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"addr": "127.0.0.1:" + port})

	if err := engine.Run("127.0.0.1:" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
