// Package validation normalizes and validates incoming event-creation and
// booking payloads. It is pure: no I/O, no persistence.
package validation

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/eventhub/events-backend/internal/models"
	"github.com/eventhub/events-backend/pkg/blobstore"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// EventInput is a fully validated event-creation payload.
type EventInput struct {
	Title       string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	StartAt     time.Time
	Mode        models.EventMode
	Audience    string
	Organizer   string
	Tags        []string
	Agenda      []string
	Capacity    int
	Image       *blobstore.Attachment
}

// requiredFields is checked in a fixed order so the first failing field is
// deterministic.
var requiredFields = []string{
	"title", "description", "overview", "venue", "location", "audience", "organizer",
}

// ValidateEventInput checks a raw multipart field map plus attachment against
// the creation rules. rejectPast refuses start timestamps before now.
func ValidateEventInput(fields map[string]string, image *blobstore.Attachment, now time.Time, rejectPast bool) (*EventInput, error) {
	trimmed := make(map[string]string, len(fields))
	for k, v := range fields {
		trimmed[k] = strings.TrimSpace(v)
	}

	for _, f := range requiredFields {
		if trimmed[f] == "" {
			return nil, &models.ValidationError{Field: f, Reason: "required"}
		}
	}

	if trimmed["date"] == "" {
		return nil, &models.ValidationError{Field: "date", Reason: "required"}
	}
	day, err := time.Parse("2006-01-02", trimmed["date"])
	if err != nil {
		return nil, &models.ValidationError{Field: "date", Reason: "invalid"}
	}

	if trimmed["time"] == "" {
		return nil, &models.ValidationError{Field: "time", Reason: "required"}
	}
	tod, err := parseTimeOfDay(trimmed["time"])
	if err != nil {
		return nil, &models.ValidationError{Field: "time", Reason: "invalid"}
	}

	startAt := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)
	if rejectPast && startAt.Before(now.UTC()) {
		return nil, &models.ValidationError{Field: "date", Reason: "past"}
	}

	mode := models.EventMode(trimmed["mode"])
	if trimmed["mode"] == "" {
		return nil, &models.ValidationError{Field: "mode", Reason: "required"}
	}
	if !validMode(mode) {
		return nil, &models.ValidationError{Field: "mode", Reason: "invalid_enum"}
	}

	capacity := 0
	if raw := trimmed["capacity"]; raw != "" {
		capacity, err = strconv.Atoi(raw)
		if err != nil || capacity < 0 {
			return nil, &models.ValidationError{Field: "capacity", Reason: "invalid"}
		}
	}

	if image == nil || len(image.Data) == 0 {
		return nil, &models.ValidationError{Field: "image", Reason: "required"}
	}

	return &EventInput{
		Title:       trimmed["title"],
		Description: trimmed["description"],
		Overview:    trimmed["overview"],
		Venue:       trimmed["venue"],
		Location:    trimmed["location"],
		Date:        trimmed["date"],
		Time:        trimmed["time"],
		StartAt:     startAt,
		Mode:        mode,
		Audience:    trimmed["audience"],
		Organizer:   trimmed["organizer"],
		Tags:        ParseTags(fields["tags"]),
		Agenda:      ParseAgenda(fields["agenda"]),
		Capacity:    capacity,
		Image:       image,
	}, nil
}

// ValidateBookingEmail checks syntactic validity and returns the normalized
// (lowercased) address.
func ValidateBookingEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &models.ValidationError{Field: "email", Reason: "required"}
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", &models.ValidationError{Field: "email", Reason: "invalid"}
	}
	return strings.ToLower(email), nil
}

// ParseTags splits a tags value on commas, trims entries, drops empties and
// deduplicates case-insensitively. A JSON-encoded array (what the web form
// submits) is accepted as-is before splitting.
func ParseTags(raw string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range splitList(raw, ",") {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	return tags
}

// ParseAgenda splits an agenda value on newlines, trims entries and drops
// empties, preserving order.
func ParseAgenda(raw string) []string {
	return splitList(raw, "\n")
}

func splitList(raw, sep string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			parts = decoded
		}
	}
	if parts == nil {
		parts = strings.Split(raw, sep)
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTimeOfDay(raw string) (time.Time, error) {
	t, err := time.Parse("15:04:05", raw)
	if err != nil {
		t, err = time.Parse("15:04", raw)
	}
	return t, err
}

func validMode(mode models.EventMode) bool {
	for _, m := range models.ValidModes {
		if mode == m {
			return true
		}
	}
	return false
}
