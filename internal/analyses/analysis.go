// Package analyses implements the analysis domain for stormsift.
// It provides types, data access, and business logic for storing, querying,
// reviewing, and re-running ensemble analysis results produced by the
// workflow engine.
package analyses

import (
	"time"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/internal/ensemble"
)

// Analysis represents a stored ensemble verdict for an inspection photo.
// It mirrors the analyses table schema with flattened workflow metadata.
type Analysis struct {
	ID                   uuid.UUID               `json:"id"`
	InspectionID         uuid.UUID               `json:"inspection_id"`
	SiteID               uuid.UUID               `json:"site_id"`
	Detections           []ensemble.Detection    `json:"detections"`
	IsCompliant          bool                    `json:"is_compliant"`
	Confidence           float64                 `json:"confidence"`
	ConsensusLevel       ensemble.ConsensusLevel `json:"consensus_level"`
	RequiresManualReview bool                    `json:"requires_manual_review"`
	ReviewReason         *string                 `json:"review_reason"`
	ModelResults         []ensemble.ModelResult  `json:"model_results"`
	RiskScore            float64                 `json:"risk_score"`
	RainTriggered        bool                    `json:"rain_triggered"`
	ProcessingTimeMs     int64                   `json:"processing_time_ms"`
	AnalyzedAt           time.Time               `json:"analyzed_at"`
	ReviewedBy           *string                 `json:"reviewed_by"`
	ReviewedAt           *time.Time              `json:"reviewed_at"`
}

// ReviewCommand carries the data needed to resolve a flagged analysis.
// ReviewedBy identifies the human reviewer. IsCompliant, when set,
// overrides the ensemble verdict.
type ReviewCommand struct {
	ReviewedBy  string `json:"reviewed_by"`
	IsCompliant *bool  `json:"is_compliant"`
}
