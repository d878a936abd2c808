package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventhub/events-backend/internal/metrics"
	"github.com/eventhub/events-backend/internal/models"
	"github.com/eventhub/events-backend/internal/repositories"
	"github.com/eventhub/events-backend/internal/utils"
	"github.com/eventhub/events-backend/internal/validation"
	"github.com/eventhub/events-backend/pkg/blobstore"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventService owns event creation and lookup.
type EventService struct {
	eventRepo  repositories.EventRepository
	blobs      blobstore.Store
	rejectPast bool
	logger     zerolog.Logger
	now        func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repositories.EventRepository, blobs blobstore.Store, rejectPast bool, logger zerolog.Logger) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		blobs:      blobs,
		rejectPast: rejectPast,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateEvent validates the raw payload, uploads the image, then persists
// the event. Order matters: nothing is stored unless the upload succeeded,
// and a stored blob is deleted best-effort if persistence then fails.
func (s *EventService) CreateEvent(ctx context.Context, fields map[string]string, image *blobstore.Attachment) (*models.Event, error) {
	input, err := validation.ValidateEventInput(fields, image, s.now(), s.rejectPast)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	base := utils.Slugify(input.Title)
	if base == "" {
		base = "event"
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		Overview:    input.Overview,
		Venue:       input.Venue,
		Location:    input.Location,
		StartAt:     input.StartAt,
		Date:        input.Date,
		Time:        input.Time,
		Mode:        input.Mode,
		Audience:    input.Audience,
		Organizer:   input.Organizer,
		ImageURL:    imageURL,
		Tags:        input.Tags,
		Agenda:      input.Agenda,
		Capacity:    input.Capacity,
		CreatedAt:   s.now().UTC(),
	}

	// The slug unique index arbitrates races between concurrent creates
	// with the same title; each rejection moves to the next suffix.
	for attempt := 1; ; attempt++ {
		slug := base
		if attempt > 1 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		event.Slug = slug

		err = s.eventRepo.Create(ctx, event)
		if errors.Is(err, models.ErrSlugTaken) {
			continue
		}
		if err != nil {
			s.deleteBlob(ctx, imageURL)
			return nil, err
		}
		break
	}

	metrics.EventsCreated.Inc()
	s.logger.Info().Str("slug", event.Slug).Str("id", event.ID.Hex()).Msg("event created")
	return event, nil
}

// GetEvent resolves an event by hex id or, failing that, by slug. A slug
// that happens to look like an id still resolves.
func (s *EventService) GetEvent(ctx context.Context, idOrSlug string) (*models.Event, error) {
	if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		event, err := s.eventRepo.FindByID(ctx, id)
		if !errors.Is(err, models.ErrEventNotFound) {
			return event, err
		}
	}
	return s.eventRepo.FindBySlug(ctx, idOrSlug)
}

// ListEvents returns summaries of all events, newest first.
func (s *EventService) ListEvents(ctx context.Context) ([]*models.EventSummary, error) {
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, e.Summary())
	}
	return summaries, nil
}

// uploadImage performs the gateway call with a single immediate retry on
// transport failures.
func (s *EventService) uploadImage(ctx context.Context, att *blobstore.Attachment) (string, error) {
	url, err := s.blobs.Upload(ctx, att)

	var ue *models.UploadError
	if errors.As(err, &ue) && ue.Kind == models.UploadTransport {
		s.logger.Warn().Err(err).Msg("image upload failed, retrying once")
		url, err = s.blobs.Upload(ctx, att)
	}
	if err != nil {
		if errors.As(err, &ue) {
			metrics.UploadFailures.WithLabelValues(string(ue.Kind)).Inc()
		}
		return "", err
	}
	return url, nil
}

func (s *EventService) deleteBlob(ctx context.Context, url string) {
	if err := s.blobs.Delete(ctx, url); err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("failed to delete orphaned blob")
	}
}
