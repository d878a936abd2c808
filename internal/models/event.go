package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventMode string

const (
	EventModeOffline EventMode = "offline"
	EventModeOnline  EventMode = "online"
	EventModeHybrid  EventMode = "hybrid"
)

// ValidModes lists the accepted values for the event mode field.
var ValidModes = []EventMode{EventModeOffline, EventModeOnline, EventModeHybrid}

// Event is a schedulable item created once and browsable by slug or id.
// Capacity of 0 means unlimited. BookedCount is maintained atomically by
// the booking ledger and is never written by handlers.
type Event struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Slug        string             `json:"slug" bson:"slug"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Overview    string             `json:"overview" bson:"overview"`
	Venue       string             `json:"venue" bson:"venue"`
	Location    string             `json:"location" bson:"location"`
	StartAt     time.Time          `json:"startAt" bson:"start_at"`
	Date        string             `json:"date" bson:"date"`
	Time        string             `json:"time" bson:"time"`
	Mode        EventMode          `json:"mode" bson:"mode"`
	Audience    string             `json:"audience" bson:"audience"`
	Organizer   string             `json:"organizer" bson:"organizer"`
	ImageURL    string             `json:"imageUrl" bson:"image_url"`
	Tags        []string           `json:"tags" bson:"tags"`
	Agenda      []string           `json:"agenda" bson:"agenda"`
	Capacity    int                `json:"capacity,omitempty" bson:"capacity"`
	BookedCount int                `json:"bookedCount" bson:"booked_count"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

// EventSummary is the listing projection returned by GET /api/events.
type EventSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Slug     string             `json:"slug"`
	Title    string             `json:"title"`
	ImageURL string             `json:"imageUrl"`
	Location string             `json:"location"`
	Date     string             `json:"date"`
	Time     string             `json:"time"`
	Mode     EventMode          `json:"mode"`
}

// Summary projects an Event into its listing form.
func (e *Event) Summary() *EventSummary {
	return &EventSummary{
		ID:       e.ID,
		Slug:     e.Slug,
		Title:    e.Title,
		ImageURL: e.ImageURL,
		Location: e.Location,
		Date:     e.Date,
		Time:     e.Time,
		Mode:     e.Mode,
	}
}
