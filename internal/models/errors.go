package models

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the repositories. The services translate
// ErrSlugTaken into a retry with the next slug suffix, and the other two
// into ConflictError values.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrSlugTaken        = errors.New("slug already taken")
	ErrDuplicateBooking = errors.New("booking already exists for this email")
	ErrNoSeatsAvailable = errors.New("no seats available")
)

// ValidationError reports a single rejected input field. Reason is one of
// "required", "invalid", "invalid_enum" or "past".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q is %s", e.Field, e.Reason)
}

type ConflictKind string

const (
	ConflictDuplicate        ConflictKind = "duplicate"
	ConflictCapacityExceeded ConflictKind = "capacity_exceeded"
)

// ConflictError reports a booking rejected by the ledger's admission rules.
type ConflictError struct {
	Kind ConflictKind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflict: %s", e.Kind)
}

type UploadErrorKind string

const (
	UploadTransport UploadErrorKind = "transport"
	UploadRejected  UploadErrorKind = "rejected"
)

// UploadError reports a failure of the blob-store collaborator. Transport
// errors are retryable; rejections are not.
type UploadError struct {
	Kind UploadErrorKind
	Err  error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image upload failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("image upload failed (%s)", e.Kind)
}

func (e *UploadError) Unwrap() error { return e.Err }
