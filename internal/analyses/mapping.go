package analyses

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("inspection_id", "InspectionID").
	Project("site_id", "SiteID").
	Project("detections", "Detections").
	Project("is_compliant", "IsCompliant").
	Project("confidence", "Confidence").
	Project("consensus_level", "ConsensusLevel").
	Project("requires_manual_review", "RequiresManualReview").
	Project("review_reason", "ReviewReason").
	Project("model_results", "ModelResults").
	Project("risk_score", "RiskScore").
	Project("rain_triggered", "RainTriggered").
	Project("processing_time_ms", "ProcessingTimeMs").
	Project("analyzed_at", "AnalyzedAt").
	Project("reviewed_by", "ReviewedBy").
	Project("reviewed_at", "ReviewedAt")

var defaultSort = query.SortField{
	Field:      "AnalyzedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	InspectionID         *uuid.UUID `json:"inspection_id,omitempty"`
	SiteID               *uuid.UUID `json:"site_id,omitempty"`
	IsCompliant          *bool      `json:"is_compliant,omitempty"`
	ConsensusLevel       *string    `json:"consensus_level,omitempty"`
	RequiresManualReview *bool      `json:"requires_manual_review,omitempty"`
	RainTriggered        *bool      `json:"rain_triggered,omitempty"`
	ReviewedBy           *string    `json:"reviewed_by,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("InspectionID", f.InspectionID).
		WhereEquals("SiteID", f.SiteID).
		WhereEquals("IsCompliant", f.IsCompliant).
		WhereEquals("ConsensusLevel", f.ConsensusLevel).
		WhereEquals("RequiresManualReview", f.RequiresManualReview).
		WhereEquals("RainTriggered", f.RainTriggered).
		WhereEquals("ReviewedBy", f.ReviewedBy)
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

	if c := values.Get("is_compliant"); c != "" {
		if v, err := strconv.ParseBool(c); err == nil {
			f.IsCompliant = &v
		}
	}

	if c := values.Get("consensus_level"); c != "" {
		f.ConsensusLevel = &c
	}

	if m := values.Get("requires_manual_review"); m != "" {
		if v, err := strconv.ParseBool(m); err == nil {
			f.RequiresManualReview = &v
		}
	}

	if rt := values.Get("rain_triggered"); rt != "" {
		if v, err := strconv.ParseBool(rt); err == nil {
			f.RainTriggered = &v
		}
	}

	if rb := values.Get("reviewed_by"); rb != "" {
		f.ReviewedBy = &rb
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	var detectionsRaw []byte
	var modelResultsRaw []byte

	err := s.Scan(
		&a.ID,
		&a.InspectionID,
		&a.SiteID,
		&detectionsRaw,
		&a.IsCompliant,
		&a.Confidence,
		&a.ConsensusLevel,
		&a.RequiresManualReview,
		&a.ReviewReason,
		&modelResultsRaw,
		&a.RiskScore,
		&a.RainTriggered,
		&a.ProcessingTimeMs,
		&a.AnalyzedAt,
		&a.ReviewedBy,
		&a.ReviewedAt,
	)

	if err != nil {
		return a, err
	}

	if len(detectionsRaw) > 0 {
		if err := json.Unmarshal(detectionsRaw, &a.Detections); err != nil {
			return a, fmt.Errorf("unmarshal detections: %w", err)
		}
	}

	if a.Detections == nil {
		a.Detections = []ensemble.Detection{}
	}

	if len(modelResultsRaw) > 0 {
		if err := json.Unmarshal(modelResultsRaw, &a.ModelResults); err != nil {
			return a, fmt.Errorf("unmarshal model_results: %w", err)
		}
	}

	if a.ModelResults == nil {
		a.ModelResults = []ensemble.ModelResult{}
	}

	return a, nil
}
