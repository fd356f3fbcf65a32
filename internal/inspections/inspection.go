// Package inspections implements the inspection domain for stormsift.
// It provides types, data access, and business logic for site photo
// upload, capture metadata, status tracking, and blob storage integration.
package inspections

import (
	"time"

	"github.com/google/uuid"
)

// Inspection statuses.
const (
	StatusPending = "pending"
	StatusReview  = "review"
	StatusFiled   = "filed"
)

// Inspection represents an uploaded site photo with its capture metadata
// and blob storage reference.
type Inspection struct {
	ID          uuid.UUID  `json:"id"`
	SiteID      uuid.UUID  `json:"site_id"`
	Inspector   string     `json:"inspector"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	StorageKey  string     `json:"storage_key"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	CapturedAt  *time.Time `json:"captured_at"`
	Notes       *string    `json:"notes"`
	Status      string     `json:"status"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// inspection photo. Data holds the raw image bytes. Latitude, Longitude,
// and CapturedAt come from device EXIF when the client extracts them;
// nil values are stored as NULL.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	SiteID      uuid.UUID
	Inspector   string
	Latitude    *float64
	Longitude   *float64
	CapturedAt  *time.Time
	Notes       *string
}

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusReview, StatusFiled:
		return true
	}
	return false
}
