package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventhub/events-backend/api/routes"
	"github.com/eventhub/events-backend/internal/config"
	"github.com/eventhub/events-backend/internal/handlers"
	"github.com/eventhub/events-backend/internal/repositories"
	mongorepo "github.com/eventhub/events-backend/internal/repositories/mongodb"
	"github.com/eventhub/events-backend/internal/services"
	"github.com/eventhub/events-backend/pkg/blobstore"
	"github.com/eventhub/events-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("error disconnecting from MongoDB")
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}
	cancel()

	var eventRepo repositories.EventRepository = mongorepo.NewEventRepository(db)
	var bookingRepo repositories.BookingRepository = mongorepo.NewBookingRepository(db)

	blobs := blobstore.New(cfg)
	if cfg.BlobStore.Mock {
		logger.Warn().Msg("blob store running in mock mode")
	}

	eventService := services.NewEventService(eventRepo, blobs, cfg.Events.RejectPastDated, logger)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, logger)

	handlerDeps := routes.HandlerDependencies{
		EventHandler:   handlers.NewEventHandler(eventService),
		BookingHandler: handlers.NewBookingHandler(bookingService),
	}

	router := routes.SetupRouter(cfg, logger, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exiting")
}
