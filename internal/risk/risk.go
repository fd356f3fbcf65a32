// Package risk computes site risk scores from consolidated defect detections.
// Scoring is a pure weighted sum: no I/O, no state.
package risk

import (
	"math"

	"github.com/stormsift/stormsift/internal/ensemble"
)

// severityWeights orders BMP failure impact for scoring.
var severityWeights = map[ensemble.Severity]float64{
	ensemble.SeverityLow:      1,
	ensemble.SeverityMedium:   3,
	ensemble.SeverityHigh:     6,
	ensemble.SeverityCritical: 10,
}

// rainMultiplier inflates the score when a recent rainfall threshold
// exceedance makes open defects actively discharging risks.
const rainMultiplier = 1.25

// Score computes a 0-100 risk score for a set of consolidated detections.
// Each detection contributes weight(severity) x confidence; the sum is
// scaled by 10 and capped at 100. rainTriggered applies the rainfall
// multiplier before capping.
func Score(detections []ensemble.Detection, rainTriggered bool) float64 {
	var raw float64
	for _, d := range detections {
		raw += severityWeights[d.Severity] * d.Confidence
	}

	score := raw * 10
	if rainTriggered {
		score *= rainMultiplier
	}

	return math.Round(min(100, score)*100) / 100
}
