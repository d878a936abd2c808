package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/eventhub/events-backend/internal/models"
	"github.com/eventhub/events-backend/pkg/blobstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEventRepo is an in-memory EventRepository for tests. Create and
// ReserveSeat honour the same invariants the Mongo indexes enforce.
type fakeEventRepo struct {
	mu         sync.Mutex
	byID       map[primitive.ObjectID]*models.Event
	createErr  error // if set, Create returns this error
	reserveErr error // if set, ReserveSeat returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[primitive.ObjectID]*models.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, e := range f.byID {
		if e.Slug == event.Slug {
			return models.ErrSlugTaken
		}
	}
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	stored := *event
	f.byID[event.ID] = &stored
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.byID[id]; ok {
		found := *e
		return &found, nil
	}
	return nil, models.ErrEventNotFound
}

func (f *fakeEventRepo) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.byID {
		if e.Slug == slug {
			found := *e
			return &found, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (f *fakeEventRepo) FindAll(ctx context.Context) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.Event, 0, len(f.byID))
	for _, e := range f.byID {
		found := *e
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeEventRepo) ReserveSeat(ctx context.Context, id primitive.ObjectID, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.reserveErr != nil {
		return f.reserveErr
	}
	e, ok := f.byID[id]
	if !ok {
		return models.ErrNoSeatsAvailable
	}
	if capacity > 0 && e.BookedCount >= capacity {
		return models.ErrNoSeatsAvailable
	}
	e.BookedCount++
	return nil
}

func (f *fakeEventRepo) ReleaseSeat(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.byID[id]; ok && e.BookedCount > 0 {
		e.BookedCount--
	}
	return nil
}

// fakeBookingRepo is an in-memory BookingRepository. The duplicate check in
// Create runs under the same lock as the insert, mirroring the unique index.
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*models.Booking
	createErr error // if set, Create returns this error
	// skipExists makes the next N ExistsForEvent calls report no booking,
	// reproducing the window where a racing request reads the ledger
	// before a concurrent insert lands.
	skipExists int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, b := range f.bookings {
		if b.EventID == booking.EventID && b.Email == booking.Email {
			return models.ErrDuplicateBooking
		}
	}
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	stored := *booking
	f.bookings = append(f.bookings, &stored)
	return nil
}

func (f *fakeBookingRepo) ExistsForEvent(ctx context.Context, eventID primitive.ObjectID, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.skipExists > 0 {
		f.skipExists--
		return false, nil
	}
	for _, b := range f.bookings {
		if b.EventID == eventID && b.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) CountForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, b := range f.bookings {
		if b.EventID == eventID {
			count++
		}
	}
	return count, nil
}

// fakeBlobStore records uploads and deletes. uploadErrs holds the error for
// each successive Upload call; calls past the slice succeed.
type fakeBlobStore struct {
	mu         sync.Mutex
	uploads    int
	deleted    []string
	uploadErrs []error
}

func (f *fakeBlobStore) Upload(ctx context.Context, att *blobstore.Attachment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.uploads
	f.uploads++
	if call < len(f.uploadErrs) && f.uploadErrs[call] != nil {
		return "", f.uploadErrs[call]
	}
	return fmt.Sprintf("https://blobs.local/obj-%d", call), nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, url)
	return nil
}
