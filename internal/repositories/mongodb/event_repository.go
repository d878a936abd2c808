package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/eventhub/events-backend/internal/models"
	"github.com/eventhub/events-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *mongo.Database) repositories.EventRepository {
	return &EventRepository{
		collection: db.Collection("events"),
	}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrSlugTaken
	}
	return err
}

func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *EventRepository) findOne(ctx context.Context, filter bson.M) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, filter).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*models.Event, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	// Ensure an empty slice is returned instead of nil if no events found
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// ReserveSeat admits one more booking via a conditional increment. The
// filter guards the counter against the capacity in a single document
// update, so enforcement is exact even under concurrent callers.
func (r *EventRepository) ReserveSeat(ctx context.Context, id primitive.ObjectID, capacity int) error {
	filter := bson.M{"_id": id}
	if capacity > 0 {
		filter["booked_count"] = bson.M{"$lt": capacity}
	}

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"booked_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNoSeatsAvailable
	}
	return nil
}

func (r *EventRepository) ReleaseSeat(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "booked_count": bson.M{"$gt": 0}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"booked_count": -1}})
	return err
}
