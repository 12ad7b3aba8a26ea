package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/alimgiray/gcommits/internal/export"
	"github.com/alimgiray/gcommits/internal/models"
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/alimgiray/gcommits/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CommitsHandler struct {
	aggregationService *services.AggregationService
}

func NewCommitsHandler(aggregationService *services.AggregationService) *CommitsHandler {
	return &CommitsHandler{
		aggregationService: aggregationService,
	}
}

// CommitsRequest is the body of the commits endpoints. Username and token
// must come with every request; the server never supplies a token.
type CommitsRequest struct {
	Username string     `json:"username"`
	Token    string     `json:"token"`
	Email    string     `json:"email"`
	Start    *time.Time `json:"start"`
	End      *time.Time `json:"end"`
}

// ListCommits runs one aggregation and returns the rows as JSON
func (h *CommitsHandler) ListCommits(c *gin.Context) {
	rows, ok := h.aggregate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rows":    rows,
	})
}

// ExportCommits runs one aggregation and returns the rows as an xlsx download
func (h *CommitsHandler) ExportCommits(c *gin.Context) {
	rows, ok := h.aggregate(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, rows); err != nil {
		logger.WithError(err).Error("Failed to build workbook")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to build workbook",
		})
		return
	}

	filename := "commits-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *CommitsHandler) aggregate(c *gin.Context) ([]models.DisplayRow, bool) {
	var request CommitsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return nil, false
	}

	creds := models.Credentials{Username: request.Username, Token: request.Token}
	rows, err := h.aggregationService.Aggregate(c.Request.Context(), services.AggregationRequest{
		Credentials: creds,
		Window:      models.DateWindow{Start: request.Start, End: request.End},
		AuthorEmail: request.Email,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"message": err.Error(),
		})
		return nil, false
	}

	return rows, true
}

// statusForError maps the aggregation error taxonomy onto HTTP statuses
func statusForError(err error) int {
	var validationErr *models.ValidationError
	var authErr *models.AuthError
	var apiErr *models.APIError
	var transportErr *models.TransportError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr), errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
