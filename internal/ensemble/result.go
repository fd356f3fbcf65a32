package ensemble

// ConsensusLevel is the qualitative agreement measure across classifier models.
type ConsensusLevel string

// Consensus levels.
const (
	ConsensusHigh   ConsensusLevel = "high"
	ConsensusMedium ConsensusLevel = "medium"
	ConsensusLow    ConsensusLevel = "low"
)

// Review reasons surfaced on a Result when RequiresManualReview is set.
// These are fixed, machine-checkable strings; callers route on them.
const (
	ReasonInsufficientModels = "Insufficient models available for ensemble"
	ReasonTooManyFailures    = "Too many model failures"
	ReasonModelDisagreement  = "Models disagree on classification"
)

// ModelResult is one adapter's complete response for one image.
// It is constructed by the adapter call, never mutated afterward, and
// retained on the Result only for traceability.
type ModelResult struct {
	ModelID          string      `json:"model_id"`
	Detections       []Detection `json:"detections"`
	IsCompliant      bool        `json:"is_compliant"`
	Confidence       float64     `json:"confidence"`
	RawResponse      string      `json:"raw_response,omitempty"`
	ProcessingTimeMs int64       `json:"processing_time_ms"`
}

// Result is the engine's final output for one image, immutable once produced.
//
// IsCompliant is derived solely from the consolidated detection list: a
// majority-agreed defect makes the result non-compliant even when the
// consensus level is medium or high. Confidence is the arithmetic mean of
// the successful models' self-reported confidences, not of any boosted
// detection confidence. Failed adapters are not represented in ModelResults;
// their absence is felt only through a reduced model count.
type Result struct {
	Detections           []Detection    `json:"detections"`
	IsCompliant          bool           `json:"is_compliant"`
	Confidence           float64        `json:"confidence"`
	ConsensusLevel       ConsensusLevel `json:"consensus_level"`
	RequiresManualReview bool           `json:"requires_manual_review"`
	ReviewReason         string         `json:"review_reason,omitempty"`
	ModelResults         []ModelResult  `json:"model_results"`
	ProcessingTimeMs     int64          `json:"processing_time_ms"`
}

// ModelIDs returns the identifiers of the models that contributed to this result.
func (r *Result) ModelIDs() []string {
	ids := make([]string, len(r.ModelResults))
	for i, m := range r.ModelResults {
		ids[i] = m.ModelID
	}
	return ids
}
