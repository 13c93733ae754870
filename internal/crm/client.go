package crm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrLocationNotFound reports that the named location has no record in the
// external system. Nothing is written when this is returned.
var ErrLocationNotFound = errors.New("location not found")

// SchemaError reports that the external schema lacks the detail-record
// object. It triggers the summary-field fallback; it is not a failure of
// the sync itself.
type SchemaError struct {
	Object string
	Status int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("object %s unavailable in external schema (status %d)", e.Object, e.Status)
}

// TransientError reports a retryable external failure: rate limiting,
// server errors, interrupted transport.
type TransientError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: transient failure: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: transient failure (status %d)", e.Op, e.Status)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Location is a resolved location record in the external system.
type Location struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// DetailRecord is one event prepared for external persistence. Fingerprint
// is the upsert key: re-syncing the same canonical set rewrites the same
// records instead of duplicating them.
type DetailRecord struct {
	Fingerprint string
	Name        string
	Date        string
	Description string
	Venue       string
	Category    string
	URL         string
	Source      string
}

// Client is the narrow interface the sync layer consumes.
type Client interface {
	// FindLocation resolves a location by name. Returns (nil, nil) when
	// no record matches.
	FindLocation(ctx context.Context, name string) (*Location, error)

	// UpsertDetailRecords writes events as detail records scoped to the
	// location, keyed by fingerprint. Returns *SchemaError when the
	// detail object is unavailable.
	UpsertDetailRecords(ctx context.Context, locationID string, records []DetailRecord) error

	// UpdateSummaryField writes a bounded JSON digest of events plus a
	// last-updated timestamp onto the location record.
	UpdateSummaryField(ctx context.Context, locationID, summaryJSON string, updatedAt time.Time) error
}
