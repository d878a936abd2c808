package handlers

import (
	"io"
	"net/http"

	"github.com/eventhub/events-backend/internal/services"
	"github.com/eventhub/events-backend/pkg/blobstore"
	"github.com/gin-gonic/gin"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart payload"})
		return
	}

	fields := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	var attachment *blobstore.Attachment
	if files := form.File["image"]; len(files) > 0 {
		file, err := files[0].Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read image attachment"})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read image attachment"})
			return
		}
		attachment = &blobstore.Attachment{
			Filename:    files[0].Filename,
			ContentType: files[0].Header.Get("Content-Type"),
			Data:        data,
		}
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), fields, attachment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	summaries, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetEvent handles GET /api/events/:id where :id is an id or a slug
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}
