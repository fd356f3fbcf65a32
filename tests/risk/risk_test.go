package risk_test

import (
	"math"
	"testing"

	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/internal/risk"
)

func detection(severity ensemble.Severity, confidence float64) ensemble.Detection {
	return ensemble.Detection{
		Class:      ensemble.DefectSiltFenceTear,
		Severity:   severity,
		Confidence: confidence,
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		detections    []ensemble.Detection
		rainTriggered bool
		want          float64
	}{
		{
			"no detections",
			nil,
			false,
			0,
		},
		{
			"no detections with rain",
			nil,
			true,
			0,
		},
		{
			"single low severity",
			[]ensemble.Detection{detection(ensemble.SeverityLow, 0.8)},
			false,
			8,
		},
		{
			"single critical severity",
			[]ensemble.Detection{detection(ensemble.SeverityCritical, 0.9)},
			false,
			90,
		},
		{
			"summed contributions",
			[]ensemble.Detection{
				detection(ensemble.SeverityMedium, 0.5),
				detection(ensemble.SeverityHigh, 0.5),
			},
			false,
			45,
		},
		{
			"rain multiplier applied",
			[]ensemble.Detection{detection(ensemble.SeverityMedium, 0.8)},
			true,
			30,
		},
		{
			"capped at one hundred",
			[]ensemble.Detection{
				detection(ensemble.SeverityCritical, 1),
				detection(ensemble.SeverityCritical, 1),
			},
			false,
			100,
		},
		{
			"rain cannot exceed cap",
			[]ensemble.Detection{detection(ensemble.SeverityCritical, 1)},
			true,
			100,
		},
		{
			"rounded to two decimals",
			[]ensemble.Detection{detection(ensemble.SeverityLow, 0.333)},
			false,
			3.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := risk.Score(tt.detections, tt.rainTriggered)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
