package services

import (
	"context"
	"errors"

	"github.com/eventhub/events-backend/internal/metrics"
	"github.com/eventhub/events-backend/internal/models"
	"github.com/eventhub/events-backend/internal/repositories"
	"github.com/eventhub/events-backend/internal/validation"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService owns booking admission against an event's ledger.
type BookingService struct {
	eventRepo   repositories.EventRepository
	bookingRepo repositories.BookingRepository
	logger      zerolog.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(eventRepo repositories.EventRepository, bookingRepo repositories.BookingRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateBooking admits one booking for the event. A seat is reserved with an
// atomic conditional increment before the insert; if the insert then loses a
// duplicate race the seat is released again. A repeated booking by the same
// address is a hard rejection, not a no-op.
func (s *BookingService) CreateBooking(ctx context.Context, eventID, email string) (*models.Booking, error) {
	id, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, models.ErrEventNotFound
	}

	email, err = validation.ValidateBookingEmail(email)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.bookingRepo.ExistsForEvent(ctx, id, email)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.BookingConflicts.WithLabelValues(string(models.ConflictDuplicate)).Inc()
		return nil, &models.ConflictError{Kind: models.ConflictDuplicate}
	}

	if err := s.eventRepo.ReserveSeat(ctx, id, event.Capacity); err != nil {
		if errors.Is(err, models.ErrNoSeatsAvailable) {
			// An identical racing request may have taken the last seat
			// after our pre-check; its loser is a duplicate, not a
			// capacity overflow.
			exists, existsErr := s.bookingRepo.ExistsForEvent(ctx, id, email)
			if existsErr == nil && exists {
				metrics.BookingConflicts.WithLabelValues(string(models.ConflictDuplicate)).Inc()
				return nil, &models.ConflictError{Kind: models.ConflictDuplicate}
			}
			metrics.BookingConflicts.WithLabelValues(string(models.ConflictCapacityExceeded)).Inc()
			return nil, &models.ConflictError{Kind: models.ConflictCapacityExceeded}
		}
		return nil, err
	}

	booking := &models.Booking{
		EventID: id,
		Email:   email,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.releaseSeat(ctx, id)
		if errors.Is(err, models.ErrDuplicateBooking) {
			metrics.BookingConflicts.WithLabelValues(string(models.ConflictDuplicate)).Inc()
			return nil, &models.ConflictError{Kind: models.ConflictDuplicate}
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.logger.Info().Str("eventId", eventID).Str("email", email).Msg("booking created")
	return booking, nil
}

// CountForEvent returns the number of bookings held against the event.
func (s *BookingService) CountForEvent(ctx context.Context, eventID string) (int64, error) {
	id, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, models.ErrEventNotFound
	}

	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return 0, err
	}

	return s.bookingRepo.CountForEvent(ctx, id)
}

func (s *BookingService) releaseSeat(ctx context.Context, id primitive.ObjectID) {
	if err := s.eventRepo.ReleaseSeat(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("eventId", id.Hex()).Msg("failed to release reserved seat")
	}
}
