package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/eventhub/events-backend/internal/config"
	"github.com/eventhub/events-backend/internal/models"
	"github.com/google/uuid"
)

// Attachment is a binary payload with its declared content type.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store is the image upload gateway: it accepts a binary attachment and
// returns a stable dereferenceable URL before the owning record is committed.
type Store interface {
	Upload(ctx context.Context, att *Attachment) (string, error)
	Delete(ctx context.Context, url string) error
}

// HTTPStore talks to an external blob store over HTTP.
type HTTPStore struct {
	BaseURL string
	APIKey  string
	Bucket  string
	Timeout time.Duration
	client  *http.Client
}

// MockStore keeps uploaded objects in memory for local runs and tests.
type MockStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

// New selects the gateway implementation from configuration.
func New(cfg *config.Config) Store {
	if cfg.BlobStore.Mock {
		return NewMockStore()
	}
	return NewHTTPStore(cfg)
}

// NewHTTPStore creates a blob-store client against cfg.BlobStore.
func NewHTTPStore(cfg *config.Config) *HTTPStore {
	return &HTTPStore{
		BaseURL: strings.TrimRight(cfg.BlobStore.BaseURL, "/"),
		APIKey:  cfg.BlobStore.APIKey,
		Bucket:  cfg.BlobStore.Bucket,
		Timeout: cfg.BlobStore.UploadTimeout,
		client:  &http.Client{},
	}
}

// NewMockStore creates an in-memory blob store.
func NewMockStore() *MockStore {
	return &MockStore{Objects: make(map[string][]byte)}
}

// Upload PUTs the attachment under a fresh object key and returns its URL.
// Network failures map to UploadError{transport}, 4xx responses to
// UploadError{rejected}. The call never outlives the configured timeout.
func (s *HTTPStore) Upload(ctx context.Context, att *Attachment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	key := uuid.NewString() + path.Ext(att.Filename)
	url := fmt.Sprintf("%s/%s/%s", s.BaseURL, s.Bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(att.Data))
	if err != nil {
		return "", &models.UploadError{Kind: models.UploadTransport, Err: err}
	}
	req.Header.Set("Content-Type", att.ContentType)
	if s.APIKey != "" {
		req.Header.Set("X-API-Key", s.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &models.UploadError{Kind: models.UploadTransport, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return url, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", &models.UploadError{Kind: models.UploadRejected, Err: fmt.Errorf("blob store returned %d", resp.StatusCode)}
	default:
		return "", &models.UploadError{Kind: models.UploadTransport, Err: fmt.Errorf("blob store returned %d", resp.StatusCode)}
	}
}

// Delete removes a previously uploaded object. Callers treat failures as
// best-effort compensation and only log them.
func (s *HTTPStore) Delete(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if s.APIKey != "" {
		req.Header.Set("X-API-Key", s.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("blob store returned %d", resp.StatusCode)
	}
	return nil
}

// Upload stores the attachment in memory under a fresh key.
func (s *MockStore) Upload(ctx context.Context, att *Attachment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := uuid.NewString() + path.Ext(att.Filename)
	url := "https://blobs.local/" + key
	s.Objects[url] = att.Data
	return url, nil
}

// Delete removes the object, if present.
func (s *MockStore) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Objects, url)
	return nil
}
