package weather

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "rainfall", "r").
	Project("id", "ID").
	Project("site_id", "SiteID").
	Project("inches", "Inches").
	Project("source", "Source").
	Project("observed_at", "ObservedAt").
	Project("recorded_at", "RecordedAt")

var defaultSort = query.SortField{
	Field:      "ObservedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for observation queries.
// Nil fields are ignored. SiteID uses exact matching. Source uses
// case-insensitive contains matching.
type Filters struct {
	SiteID *uuid.UUID `json:"site_id,omitempty"`
	Source *string    `json:"source,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SiteID", f.SiteID).
		WhereContains("Source", f.Source)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("site_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SiteID = &id
		}
	}

	if src := values.Get("source"); src != "" {
		f.Source = &src
	}

	return f
}

func scanObservation(s repository.Scanner) (Observation, error) {
	var o Observation
	err := s.Scan(
		&o.ID,
		&o.SiteID,
		&o.Inches,
		&o.Source,
		&o.ObservedAt,
		&o.RecordedAt,
	)
	return o, err
}
