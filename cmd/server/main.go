package main

import (
	"fmt"

	"staffdesk/internal/api/routes"
	"staffdesk/internal/config"
	"staffdesk/internal/logs"
	"staffdesk/internal/models"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		logs.Logger.Fatalf("Failed to load config: %v", err)
	}

	logs.Init(logs.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	// Initialize database
	if err := models.InitDB(cfg); err != nil {
		logs.Logger.Fatalf("Failed to initialize database: %v", err)
	}

	// Seed reference data and the default admin account
	referenceService := services.NewReferenceService()
	if err := referenceService.EnsureReferenceData(); err != nil {
		logs.Logger.Fatalf("Failed to seed reference data: %v", err)
	}

	authService := services.NewAuthService(cfg)
	if err := services.EnsureDefaultAdmin(cfg, authService); err != nil {
		logs.Logger.Warnf("Failed to create default admin: %v", err)
	}

	// Opportunistic cleanup of stale session rows
	if err := authService.DeleteExpiredSessions(); err != nil {
		logs.Logger.Warnf("Failed to clean up expired sessions: %v", err)
	}

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	// Setup routes
	routes.SetupRoutes(r, cfg)

	// Run server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logs.Logger.Infof("Starting staffdesk server on %s", addr)
	if err := r.Run(addr); err != nil {
		logs.Logger.Fatalf("Failed to start server: %v", err)
	}
}
