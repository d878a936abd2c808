package mongodb

import (
	"context"
	"time"

	"github.com/eventhub/events-backend/internal/models"
	"github.com/eventhub/events-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) repositories.BookingRepository {
	return &BookingRepository{
		collection: db.Collection("bookings"),
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateBooking
	}
	return err
}

func (r *BookingRepository) ExistsForEvent(ctx context.Context, eventID primitive.ObjectID, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"event_id": eventID, "email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingRepository) CountForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"event_id": eventID})
}
