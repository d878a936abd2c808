package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventhub/events-backend/internal/models"
	"github.com/eventhub/events-backend/pkg/blobstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newEventService(repo *fakeEventRepo, blobs *fakeBlobStore) *EventService {
	s := NewEventService(repo, blobs, true, zerolog.Nop())
	s.now = func() time.Time { return testNow }
	return s
}

func validFields() map[string]string {
	return map[string]string{
		"title":       "Demo",
		"description": "A demo event",
		"overview":    "Short summary",
		"venue":       "Main Hall",
		"location":    "Berlin, Germany",
		"date":        "2026-09-01",
		"time":        "18:30",
		"mode":        "offline",
		"audience":    "Developers",
		"organizer":   "EventHub",
		"tags":        `["go","backend"]`,
		"agenda":      "Doors open\nKeynote\nQ&A",
	}
}

func pngAttachment() *blobstore.Attachment {
	return &blobstore.Attachment{
		Filename:    "banner.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestCreateEvent_Success(t *testing.T) {
	repo := newFakeEventRepo()
	blobs := &fakeBlobStore{}
	svc := newEventService(repo, blobs)

	event, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())
	require.NoError(t, err)

	assert.Equal(t, "demo", event.Slug)
	assert.False(t, event.ID.IsZero())
	assert.NotEmpty(t, event.ImageURL)
	assert.Equal(t, []string{"go", "backend"}, event.Tags)
	assert.Equal(t, []string{"Doors open", "Keynote", "Q&A"}, event.Agenda)
	assert.Equal(t, testNow, event.CreatedAt)
	assert.Equal(t, 1, blobs.uploads)
}

func TestCreateEvent_SlugCollisionAppendsSuffix(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newEventService(repo, &fakeBlobStore{})

	first, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())
	require.NoError(t, err)
	second, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())
	require.NoError(t, err)
	third, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())
	require.NoError(t, err)

	assert.Equal(t, "demo", first.Slug)
	assert.Equal(t, "demo-2", second.Slug)
	assert.Equal(t, "demo-3", third.Slug)
}

func TestCreateEvent_ValidationFailureTouchesNothing(t *testing.T) {
	repo := newFakeEventRepo()
	blobs := &fakeBlobStore{}
	svc := newEventService(repo, blobs)

	fields := validFields()
	delete(fields, "title")

	_, err := svc.CreateEvent(context.Background(), fields, pngAttachment())

	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
	assert.Equal(t, 0, blobs.uploads)
	assert.Empty(t, repo.byID)
}

func TestCreateEvent_TransportFailureRetriesOnce(t *testing.T) {
	repo := newFakeEventRepo()
	blobs := &fakeBlobStore{
		uploadErrs: []error{&models.UploadError{Kind: models.UploadTransport}},
	}
	svc := newEventService(repo, blobs)

	event, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())
	require.NoError(t, err)

	assert.Equal(t, 2, blobs.uploads)
	assert.NotEmpty(t, event.ImageURL)
}

func TestCreateEvent_RepeatedTransportFailureAborts(t *testing.T) {
	repo := newFakeEventRepo()
	blobs := &fakeBlobStore{
		uploadErrs: []error{
			&models.UploadError{Kind: models.UploadTransport},
			&models.UploadError{Kind: models.UploadTransport},
		},
	}
	svc := newEventService(repo, blobs)

	_, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())

	var ue *models.UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, models.UploadTransport, ue.Kind)
	assert.Equal(t, 2, blobs.uploads)
	assert.Empty(t, repo.byID)
}

func TestCreateEvent_RejectedUploadNotRetried(t *testing.T) {
	repo := newFakeEventRepo()
	blobs := &fakeBlobStore{
		uploadErrs: []error{&models.UploadError{Kind: models.UploadRejected}},
	}
	svc := newEventService(repo, blobs)

	_, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())

	var ue *models.UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, models.UploadRejected, ue.Kind)
	assert.Equal(t, 1, blobs.uploads)
}

func TestCreateEvent_PersistFailureDeletesBlob(t *testing.T) {
	repo := newFakeEventRepo()
	repo.createErr = errors.New("connection reset")
	blobs := &fakeBlobStore{}
	svc := newEventService(repo, blobs)

	_, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())
	require.Error(t, err)

	require.Len(t, blobs.deleted, 1)
	assert.Equal(t, "https://blobs.local/obj-0", blobs.deleted[0])
}

func TestGetEvent_RoundTrip(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newEventService(repo, &fakeBlobStore{})

	created, err := svc.CreateEvent(context.Background(), validFields(), pngAttachment())
	require.NoError(t, err)

	byID, err := svc.GetEvent(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	bySlug, err := svc.GetEvent(context.Background(), created.Slug)
	require.NoError(t, err)

	assert.Equal(t, created, byID)
	assert.Equal(t, byID, bySlug)
}

func TestGetEvent_HexLookingSlug(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newEventService(repo, &fakeBlobStore{})

	fields := validFields()
	fields["title"] = "deadbeefdeadbeefdeadbeef"
	created, err := svc.CreateEvent(context.Background(), fields, pngAttachment())
	require.NoError(t, err)
	require.Equal(t, "deadbeefdeadbeefdeadbeef", created.Slug)

	// The slug parses as an ObjectID; the id miss must fall through to
	// the slug lookup.
	fetched, err := svc.GetEvent(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestGetEvent_NotFound(t *testing.T) {
	svc := newEventService(newFakeEventRepo(), &fakeBlobStore{})

	_, err := svc.GetEvent(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestListEvents_NewestFirst(t *testing.T) {
	repo := newFakeEventRepo()
	blobs := &fakeBlobStore{}
	svc := NewEventService(repo, blobs, true, zerolog.Nop())

	clock := testNow
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	fields := validFields()
	fields["title"] = "First"
	_, err := svc.CreateEvent(context.Background(), fields, pngAttachment())
	require.NoError(t, err)

	fields = validFields()
	fields["title"] = "Second"
	_, err = svc.CreateEvent(context.Background(), fields, pngAttachment())
	require.NoError(t, err)

	summaries, err := svc.ListEvents(context.Background())
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "second", summaries[0].Slug)
	assert.Equal(t, "first", summaries[1].Slug)
}
