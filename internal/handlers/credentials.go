package handlers

import (
	"net/http"
	"strings"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/alimgiray/gcommits/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CredentialsHandler struct {
	credentialService *services.CredentialService
}

func NewCredentialsHandler(credentialService *services.CredentialService) *CredentialsHandler {
	return &CredentialsHandler{
		credentialService: credentialService,
	}
}

// GetCredentials returns the remembered username
func (h *CredentialsHandler) GetCredentials(c *gin.Context) {
	creds, err := h.credentialService.Load()
	if err != nil {
		logger.WithError(err).Error("Failed to load credentials")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load credentials",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"username": creds.Username,
	})
}

// SaveCredentials remembers the username. Tokens stay with the client and
// are never written to the server's store.
func (h *CredentialsHandler) SaveCredentials(c *gin.Context) {
	var request models.Credentials
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	request.Username = strings.TrimSpace(request.Username)
	if request.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username is required",
		})
		return
	}

	if err := h.credentialService.SaveUsername(request.Username); err != nil {
		logger.WithError(err).Error("Failed to save credentials")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to save credentials",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"username": request.Username,
	})
}

// ClearCredentials forgets everything stored
func (h *CredentialsHandler) ClearCredentials(c *gin.Context) {
	if err := h.credentialService.Clear(); err != nil {
		logger.WithError(err).Error("Failed to clear credentials")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to clear credentials",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
