package ensemble

// Confidence thresholds separating consensus levels when all models agree
// on compliance.
const (
	highConfidenceFloor   = 0.85
	mediumConfidenceFloor = 0.65
)

// Consensus derives the qualitative agreement level from the successful
// model results. Any disagreement on the compliance flag yields ConsensusLow
// regardless of confidence; with agreement, the mean self-reported confidence
// selects high (>= 0.85), medium (>= 0.65), or low.
func Consensus(results []ModelResult) ConsensusLevel {
	if len(results) == 0 {
		return ConsensusLow
	}

	agreement := true
	for _, r := range results[1:] {
		if r.IsCompliant != results[0].IsCompliant {
			agreement = false
			break
		}
	}

	avg := MeanConfidence(results)

	switch {
	case agreement && avg >= highConfidenceFloor:
		return ConsensusHigh
	case agreement && avg >= mediumConfidenceFloor:
		return ConsensusMedium
	default:
		return ConsensusLow
	}
}

// MeanConfidence returns the arithmetic mean of the models' self-reported
// confidence values, or 0 when no models succeeded.
func MeanConfidence(results []ModelResult) float64 {
	if len(results) == 0 {
		return 0
	}

	var sum float64
	for _, r := range results {
		sum += r.Confidence
	}
	return sum / float64(len(results))
}
