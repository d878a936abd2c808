// Package repositories defines the persistence interfaces implemented by
// the mongodb subpackage.
package repositories

import (
	"context"

	"github.com/eventhub/events-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventRepository is the event store.
type EventRepository interface {
	// Create persists the event atomically. Returns models.ErrSlugTaken if
	// the slug unique index rejects the insert.
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	// FindAll returns all events ordered by creation time, newest first.
	FindAll(ctx context.Context) ([]*models.Event, error)
	// ReserveSeat atomically increments the event's booked counter. When
	// capacity > 0 the increment only applies while the counter is below
	// capacity; otherwise models.ErrNoSeatsAvailable is returned.
	ReserveSeat(ctx context.Context, id primitive.ObjectID, capacity int) error
	// ReleaseSeat undoes a reservation after a failed booking insert.
	ReleaseSeat(ctx context.Context, id primitive.ObjectID) error
}

// BookingRepository is the booking ledger.
type BookingRepository interface {
	// Create inserts the booking. Returns models.ErrDuplicateBooking if a
	// booking for the same (event, email) pair already exists; the unique
	// index serializes concurrent identical attempts.
	Create(ctx context.Context, booking *models.Booking) error
	ExistsForEvent(ctx context.Context, eventID primitive.ObjectID, email string) (bool, error)
	CountForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}
