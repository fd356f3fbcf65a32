// Package reports implements compliance reporting for stormsift. It
// aggregates stored analyses into per-site summaries and exports analysis
// detail as CSV to blob storage for regulator submission.
package reports

import (
	"time"

	"github.com/google/uuid"
)

// SiteSummary aggregates analysis outcomes for a single site.
type SiteSummary struct {
	SiteID         uuid.UUID  `json:"site_id"`
	Analyses       int        `json:"analyses"`
	Compliant      int        `json:"compliant"`
	NonCompliant   int        `json:"non_compliant"`
	PendingReview  int        `json:"pending_review"`
	RainTriggered  int        `json:"rain_triggered"`
	AvgRiskScore   float64    `json:"avg_risk_score"`
	MaxRiskScore   float64    `json:"max_risk_score"`
	LastAnalyzedAt *time.Time `json:"last_analyzed_at"`
}

// Export describes a CSV export written to blob storage.
type Export struct {
	SiteID      uuid.UUID `json:"site_id"`
	StorageKey  string    `json:"storage_key"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}
