package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a single attendee's reservation against an Event, keyed by
// email. Emails are stored lowercased; the (event_id, email) pair is unique.
type Booking struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID   primitive.ObjectID `json:"eventId" bson:"event_id"`
	Email     string             `json:"email" bson:"email"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}
