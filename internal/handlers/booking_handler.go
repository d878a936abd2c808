package handlers

import (
	"net/http"

	"github.com/eventhub/events-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

type bookingRequest struct {
	Email string `json:"email"`
}

// CreateBooking handles POST /api/events/:id/book
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), c.Param("id"), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CountBookings handles GET /api/events/:id/bookings/count
func (h *BookingHandler) CountBookings(c *gin.Context) {
	count, err := h.bookingService.CountForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
