package ensemble

// DefectClass identifies a category of BMP (Best Management Practice) failure
// from the fixed inspection catalogue.
type DefectClass string

// Defect classes recognized by the vision backends.
const (
	DefectSiltFenceTear           DefectClass = "silt_fence_tear"
	DefectInletClogged            DefectClass = "inlet_clogged"
	DefectSedimentTracking        DefectClass = "sediment_tracking"
	DefectSlopeErosion            DefectClass = "slope_erosion"
	DefectUncoveredStockpile      DefectClass = "uncovered_stockpile"
	DefectConcreteWashoutOverflow DefectClass = "concrete_washout_overflow"
	DefectUnstabilizedEntrance    DefectClass = "unstabilized_entrance"
	DefectUnknown                 DefectClass = "unknown"
)

var defectClasses = map[DefectClass]bool{
	DefectSiltFenceTear:           true,
	DefectInletClogged:            true,
	DefectSedimentTracking:        true,
	DefectSlopeErosion:            true,
	DefectUncoveredStockpile:      true,
	DefectConcreteWashoutOverflow: true,
	DefectUnstabilizedEntrance:    true,
	DefectUnknown:                 true,
}

// ParseDefectClass maps a raw model label to a catalogued class.
// Unrecognized labels collapse to DefectUnknown rather than failing the adapter.
func ParseDefectClass(s string) DefectClass {
	c := DefectClass(s)
	if defectClasses[c] {
		return c
	}
	return DefectUnknown
}

// Severity is the ordered severity scale for a detection. It is reported by
// the model as an independent attribute; the engine never derives it from the
// defect class.
type Severity string

// Severity levels, least to most severe.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity maps a raw model severity to the ordered scale,
// defaulting to SeverityLow for unrecognized values.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s)
	default:
		return SeverityLow
	}
}

// BoundingBox locates a detection in source-image pixel space.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Detection is one candidate defect found by one model.
// Confidence is always in [0,1]; adapters clamp before constructing.
type Detection struct {
	Class       DefectClass  `json:"defect_class"`
	Confidence  float64      `json:"confidence"`
	Severity    Severity     `json:"severity"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
	Description string       `json:"description,omitempty"`
}
