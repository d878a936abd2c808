package handlers

import (
	"errors"
	"net/http"

	"github.com/eventhub/events-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// respondError maps the typed domain errors onto HTTP status codes. Field
// and reason detail is only exposed for validation errors; storage errors
// collapse to a generic 500 body.
func respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": ve.Error(),
			"field":   ve.Field,
			"reason":  ve.Reason,
		})
		return
	}

	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}

	var ce *models.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{
			"message": ce.Error(),
			"kind":    string(ce.Kind),
		})
		return
	}

	var ue *models.UploadError
	if errors.As(err, &ue) {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Image upload failed"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
