package handlers

import (
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the page, the JSON API and the health check
func SetupRoutes(router *gin.Engine, aggregationService *services.AggregationService, credentialService *services.CredentialService) {
	homeHandler := NewHomeHandler(credentialService)
	commitsHandler := NewCommitsHandler(aggregationService)
	credentialsHandler := NewCredentialsHandler(credentialService)
	healthHandler := NewHealthHandler()
	notFoundHandler := NewNotFoundHandler()

	router.GET("/", homeHandler.Index)

	api := router.Group("/api")
	{
		api.POST("/commits", commitsHandler.ListCommits)
		api.POST("/commits/export", commitsHandler.ExportCommits)

		api.GET("/credentials", credentialsHandler.GetCredentials)
		api.POST("/credentials", credentialsHandler.SaveCredentials)
		api.DELETE("/credentials", credentialsHandler.ClearCredentials)
	}

	router.GET("/health", healthHandler.HealthCheck)
	router.NoRoute(notFoundHandler.NotFound)
}
