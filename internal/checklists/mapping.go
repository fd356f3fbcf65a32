package checklists

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "checklists", "cl").
	Project("id", "ID").
	Project("inspection_id", "InspectionID").
	Project("site_id", "SiteID").
	Project("items", "Items").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for checklist queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	InspectionID *uuid.UUID `json:"inspection_id,omitempty"`
	SiteID       *uuid.UUID `json:"site_id,omitempty"`
	Status       *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("InspectionID", f.InspectionID).
		WhereEquals("SiteID", f.SiteID).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("inspection_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.InspectionID = &id
		}
	}

	if s := values.Get("site_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SiteID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanChecklist(s repository.Scanner) (Checklist, error) {
	var c Checklist
	var itemsRaw []byte

	err := s.Scan(
		&c.ID,
		&c.InspectionID,
		&c.SiteID,
		&itemsRaw,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		return c, err
	}

	if len(itemsRaw) > 0 {
		if err := json.Unmarshal(itemsRaw, &c.Items); err != nil {
			return c, fmt.Errorf("unmarshal items: %w", err)
		}
	}

	if c.Items == nil {
		c.Items = []Item{}
	}

	return c, nil
}
