package routes

import (
	"github.com/eventhub/events-backend/internal/config"
	"github.com/eventhub/events-backend/internal/handlers"
	"github.com/eventhub/events-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HandlerDependencies bundles the handlers wired by main
type HandlerDependencies struct {
	EventHandler   *handlers.EventHandler
	BookingHandler *handlers.BookingHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, logger zerolog.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		events := api.Group("/events")
		{
			events.GET("", deps.EventHandler.ListEvents)
			events.GET("/:id", deps.EventHandler.GetEvent)
			events.POST("/:id/book", deps.BookingHandler.CreateBooking)
			events.GET("/:id/bookings/count", deps.BookingHandler.CountBookings)

			if cfg.JWT.Enabled {
				events.POST("", middleware.JWTAuthMiddleware(cfg), deps.EventHandler.CreateEvent)
			} else {
				events.POST("", deps.EventHandler.CreateEvent)
			}
		}
	}

	return router
}
