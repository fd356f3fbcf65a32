// Package checklists implements the corrective action checklist domain for
// stormsift. A checklist tracks the remediation work an inspection's findings
// require, from draft through field completion.
package checklists

import (
	"time"

	"github.com/google/uuid"
)

// Checklist statuses.
const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
)

// Item is a single corrective action within a checklist.
type Item struct {
	Label     string  `json:"label"`
	Completed bool    `json:"completed"`
	Notes     *string `json:"notes,omitempty"`
}

// Checklist represents the corrective action list for an inspection.
type Checklist struct {
	ID           uuid.UUID `json:"id"`
	InspectionID uuid.UUID `json:"inspection_id"`
	SiteID       uuid.UUID `json:"site_id"`
	Items        []Item    `json:"items"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a checklist manually.
type CreateCommand struct {
	InspectionID uuid.UUID `json:"inspection_id"`
	SiteID       uuid.UUID `json:"site_id"`
	Items        []Item    `json:"items"`
}

// UpdateCommand carries the data needed to update a checklist's items and status.
type UpdateCommand struct {
	Items  []Item `json:"items"`
	Status string `json:"status"`
}

func validStatus(s string) bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusComplete:
		return true
	}
	return false
}
