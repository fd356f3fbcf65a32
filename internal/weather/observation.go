// Package weather implements the rainfall observation domain for stormsift.
// Observations feed the rain trigger used in risk scoring: permits require
// inspections after qualifying rain events, and defects found during or
// shortly after rainfall carry elevated discharge risk.
package weather

import (
	"time"

	"github.com/google/uuid"
)

// RainThresholdInches is the cumulative 24-hour rainfall that qualifies as a
// rain event under construction general permit rules.
const RainThresholdInches = 0.25

// Observation represents a single rainfall measurement for a site.
type Observation struct {
	ID         uuid.UUID `json:"id"`
	SiteID     uuid.UUID `json:"site_id"`
	Inches     float64   `json:"inches"`
	Source     string    `json:"source"`
	ObservedAt time.Time `json:"observed_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CreateCommand carries the data needed to record a rainfall observation.
// Source identifies the measurement origin (on-site gauge, NOAA station, etc).
type CreateCommand struct {
	SiteID     uuid.UUID `json:"site_id"`
	Inches     float64   `json:"inches"`
	Source     string    `json:"source"`
	ObservedAt time.Time `json:"observed_at"`
}

// RainStatus reports the rain trigger evaluation for a site.
type RainStatus struct {
	SiteID       uuid.UUID `json:"site_id"`
	TotalInches  float64   `json:"total_inches"`
	Threshold    float64   `json:"threshold"`
	Triggered    bool      `json:"triggered"`
	WindowStart  time.Time `json:"window_start"`
	WindowEnd    time.Time `json:"window_end"`
	Observations int       `json:"observations"`
}
