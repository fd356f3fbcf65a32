package analyses_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/internal/analyses"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", analyses.ErrNotFound, http.StatusNotFound},
		{"duplicate", analyses.ErrDuplicate, http.StatusConflict},
		{"invalid status", analyses.ErrInvalidStatus, http.StatusConflict},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", analyses.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyses.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		inspectionID := uuid.New()
		siteID := uuid.New()
		values := url.Values{
			"inspection_id":          {inspectionID.String()},
			"site_id":                {siteID.String()},
			"is_compliant":           {"true"},
			"consensus_level":        {"high"},
			"requires_manual_review": {"false"},
			"rain_triggered":         {"true"},
			"reviewed_by":            {"m.chen"},
		}

		f := analyses.FiltersFromQuery(values)

		if f.InspectionID == nil || *f.InspectionID != inspectionID {
			t.Errorf("InspectionID = %v, want %v", f.InspectionID, inspectionID)
		}
		if f.SiteID == nil || *f.SiteID != siteID {
			t.Errorf("SiteID = %v, want %v", f.SiteID, siteID)
		}
		if f.IsCompliant == nil || !*f.IsCompliant {
			t.Errorf("IsCompliant = %v, want true", f.IsCompliant)
		}
		if f.ConsensusLevel == nil || *f.ConsensusLevel != "high" {
			t.Errorf("ConsensusLevel = %v, want high", f.ConsensusLevel)
		}
		if f.RequiresManualReview == nil || *f.RequiresManualReview {
			t.Errorf("RequiresManualReview = %v, want false", f.RequiresManualReview)
		}
		if f.RainTriggered == nil || !*f.RainTriggered {
			t.Errorf("RainTriggered = %v, want true", f.RainTriggered)
		}
		if f.ReviewedBy == nil || *f.ReviewedBy != "m.chen" {
			t.Errorf("ReviewedBy = %v, want m.chen", f.ReviewedBy)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := analyses.FiltersFromQuery(url.Values{})

		if f.InspectionID != nil || f.SiteID != nil || f.IsCompliant != nil {
			t.Error("expected nil filters for empty query")
		}
	})

	t.Run("malformed values ignored", func(t *testing.T) {
		values := url.Values{
			"inspection_id": {"not-a-uuid"},
			"is_compliant":  {"maybe"},
		}

		f := analyses.FiltersFromQuery(values)

		if f.InspectionID != nil {
			t.Errorf("InspectionID = %v, want nil", f.InspectionID)
		}
		if f.IsCompliant != nil {
			t.Errorf("IsCompliant = %v, want nil", f.IsCompliant)
		}
	})
}
