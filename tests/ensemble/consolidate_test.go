package ensemble_test

import (
	"math"
	"testing"

	"github.com/stormsift/stormsift/internal/ensemble"
)

func detection(class ensemble.DefectClass, confidence float64) ensemble.Detection {
	return ensemble.Detection{
		Class:      class,
		Confidence: confidence,
		Severity:   ensemble.SeverityMedium,
	}
}

func TestConsolidate(t *testing.T) {
	tests := []struct {
		name       string
		detections []ensemble.Detection
		modelCount int
		want       []ensemble.DefectClass
	}{
		{
			"empty input",
			nil,
			3,
			nil,
		},
		{
			"zero model count",
			[]ensemble.Detection{detection(ensemble.DefectSiltFenceTear, 0.9)},
			0,
			nil,
		},
		{
			"unanimous class retained",
			[]ensemble.Detection{
				detection(ensemble.DefectSiltFenceTear, 0.8),
				detection(ensemble.DefectSiltFenceTear, 0.9),
				detection(ensemble.DefectSiltFenceTear, 0.7),
			},
			3,
			[]ensemble.DefectClass{ensemble.DefectSiltFenceTear},
		},
		{
			"minority class dropped",
			[]ensemble.Detection{
				detection(ensemble.DefectSiltFenceTear, 0.8),
				detection(ensemble.DefectSiltFenceTear, 0.9),
				detection(ensemble.DefectSlopeErosion, 0.95),
			},
			3,
			[]ensemble.DefectClass{ensemble.DefectSiltFenceTear},
		},
		{
			"exact half vote retained",
			[]ensemble.Detection{detection(ensemble.DefectInletClogged, 0.7)},
			2,
			[]ensemble.DefectClass{ensemble.DefectInletClogged},
		},
		{
			"first seen order preserved",
			[]ensemble.Detection{
				detection(ensemble.DefectSlopeErosion, 0.7),
				detection(ensemble.DefectSiltFenceTear, 0.9),
				detection(ensemble.DefectSlopeErosion, 0.8),
				detection(ensemble.DefectSiltFenceTear, 0.8),
			},
			2,
			[]ensemble.DefectClass{ensemble.DefectSlopeErosion, ensemble.DefectSiltFenceTear},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ensemble.Consolidate(tt.detections, tt.modelCount)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d detections, want %d", len(got), len(tt.want))
			}
			for i, d := range got {
				if d.Class != tt.want[i] {
					t.Errorf("detection %d class = %q, want %q", i, d.Class, tt.want[i])
				}
			}
		})
	}
}

func TestConsolidateRepresentative(t *testing.T) {
	low := detection(ensemble.DefectSedimentTracking, 0.6)
	low.Description = "first"
	high := detection(ensemble.DefectSedimentTracking, 0.9)
	high.Description = "second"

	got := ensemble.Consolidate([]ensemble.Detection{low, high}, 2)
	if len(got) != 1 {
		t.Fatalf("got %d detections, want 1", len(got))
	}
	if got[0].Description != "second" {
		t.Errorf("representative = %q, want the highest confidence detection", got[0].Description)
	}
}

func TestConsolidateConfidenceTieKeepsFirst(t *testing.T) {
	first := detection(ensemble.DefectUncoveredStockpile, 0.8)
	first.Description = "first"
	second := detection(ensemble.DefectUncoveredStockpile, 0.8)
	second.Description = "second"

	got := ensemble.Consolidate([]ensemble.Detection{first, second}, 2)
	if len(got) != 1 {
		t.Fatalf("got %d detections, want 1", len(got))
	}
	if got[0].Description != "first" {
		t.Errorf("representative = %q, want the first encountered", got[0].Description)
	}
}

func TestConsolidateConfidenceBoost(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		votes      int
		modelCount int
		want       float64
	}{
		{"unanimous boost", 0.8, 3, 3, 0.8 * 1.2},
		{"half vote boost", 0.6, 1, 2, 0.6 * 1.1},
		{"capped at one", 0.9, 3, 3, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detections := make([]ensemble.Detection, tt.votes)
			for i := range detections {
				detections[i] = detection(ensemble.DefectConcreteWashoutOverflow, tt.confidence)
			}

			got := ensemble.Consolidate(detections, tt.modelCount)
			if len(got) != 1 {
				t.Fatalf("got %d detections, want 1", len(got))
			}
			if math.Abs(got[0].Confidence-tt.want) > 1e-9 {
				t.Errorf("confidence = %v, want %v", got[0].Confidence, tt.want)
			}
		})
	}
}

func TestConsolidateDeterministic(t *testing.T) {
	input := []ensemble.Detection{
		detection(ensemble.DefectSiltFenceTear, 0.8),
		detection(ensemble.DefectSlopeErosion, 0.7),
		detection(ensemble.DefectSiltFenceTear, 0.9),
	}

	first := ensemble.Consolidate(input, 2)
	for range 10 {
		again := ensemble.Consolidate(input, 2)
		if len(again) != len(first) {
			t.Fatal("consolidation must be deterministic")
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatal("consolidation must be deterministic")
			}
		}
	}
}
