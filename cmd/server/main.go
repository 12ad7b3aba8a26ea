package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alimgiray/gcommits/internal/handlers"
	"github.com/alimgiray/gcommits/internal/middleware"
	"github.com/alimgiray/gcommits/internal/repositories"
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/alimgiray/gcommits/pkg/config"
	"github.com/alimgiray/gcommits/pkg/database"
	"github.com/alimgiray/gcommits/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	credentialRepo := repositories.NewCredentialRepository(database.DB)
	credentialService := services.NewCredentialService(credentialRepo)
	aggregationService, err := services.NewAggregationServiceFromConfig(cfg)
	if err != nil {
		logger.Fatalf("Failed to configure aggregation: %v", err)
	}

	// Initialize router
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Static("/static", "./web/static")

	handlers.SetupRoutes(router, aggregationService, credentialService)
	loadTemplates(router)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
	logger.Infof("Server stopped")
}

func loadTemplates(router *gin.Engine) {
	cwd, err := os.Getwd()
	if err != nil {
		logger.Fatalf("Couldn't get working directory: %v", err)
	}

	router.LoadHTMLFiles(
		filepath.Join(cwd, "web/templates/layouts/header.html"),
		filepath.Join(cwd, "web/templates/layouts/footer.html"),
		filepath.Join(cwd, "web/templates/index.html"),
		filepath.Join(cwd, "web/templates/404.html"),
	)
}
