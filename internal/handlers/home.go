package handlers

import (
	"net/http"

	"github.com/alimgiray/gcommits/internal/services"
	"github.com/alimgiray/gcommits/pkg/logger"
	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	credentialService *services.CredentialService
}

func NewHomeHandler(credentialService *services.CredentialService) *HomeHandler {
	return &HomeHandler{
		credentialService: credentialService,
	}
}

// Index renders the commit search page, prefilled with the stored username
func (h *HomeHandler) Index(c *gin.Context) {
	creds, err := h.credentialService.Load()
	if err != nil {
		logger.WithError(err).Warn("Failed to load stored credentials")
	}

	data := gin.H{
		"Title":      "Commits",
		"StoredUser": creds.Username,
	}

	c.HTML(http.StatusOK, "index", data)
}
