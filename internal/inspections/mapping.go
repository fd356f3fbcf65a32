package inspections

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "inspections", "i").
	Project("id", "ID").
	Project("site_id", "SiteID").
	Project("inspector", "Inspector").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("storage_key", "StorageKey").
	Project("latitude", "Latitude").
	Project("longitude", "Longitude").
	Project("captured_at", "CapturedAt").
	Project("notes", "Notes").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for inspection queries.
// Nil fields are ignored. SiteID, Status, and ContentType use exact
// matching. Inspector and Filename use case-insensitive contains matching.
type Filters struct {
	SiteID      *uuid.UUID `json:"site_id,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Inspector   *string    `json:"inspector,omitempty"`
	Filename    *string    `json:"filename,omitempty"`
	ContentType *string    `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SiteID", f.SiteID).
		WhereEquals("Status", f.Status).
		WhereContains("Inspector", f.Inspector).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("site_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SiteID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if in := values.Get("inspector"); in != "" {
		f.Inspector = &in
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanInspection(s repository.Scanner) (Inspection, error) {
	var i Inspection
	err := s.Scan(
		&i.ID,
		&i.SiteID,
		&i.Inspector,
		&i.Filename,
		&i.ContentType,
		&i.SizeBytes,
		&i.StorageKey,
		&i.Latitude,
		&i.Longitude,
		&i.CapturedAt,
		&i.Notes,
		&i.Status,
		&i.UploadedAt,
		&i.UpdatedAt,
	)
	return i, err
}
