package ensemble

import (
	"fmt"
	"time"
)

// DefaultPrompt is the classification instruction used when a caller does
// not supply one.
const DefaultPrompt = `You are inspecting a construction-site stormwater BMP photo.
Identify every visible BMP failure. Respond with JSON only:
{"detections":[{"defect_class":"<silt_fence_tear|inlet_clogged|sediment_tracking|slope_erosion|uncovered_stockpile|concrete_washout_overflow|unstabilized_entrance|unknown>","confidence":0.0,"severity":"<low|medium|high|critical>","bounding_box":{"x":0,"y":0,"width":0,"height":0},"description":""}],"is_compliant":false,"confidence":0.0}
Set is_compliant true only when no meaningful defects are visible. Confidence values are in [0,1].`

// Config holds engine policy settings.
type Config struct {
	// MinModels is the minimum number of models that must be available and
	// succeed for an automated verdict. Defaults to 2.
	MinModels int

	// ProbeTimeout bounds each adapter's availability check.
	ProbeTimeout time.Duration

	// ClassifyTimeout bounds each adapter's classification call. A timeout
	// is treated identically to any other adapter failure.
	ClassifyTimeout time.Duration

	// Prompt overrides DefaultPrompt when set.
	Prompt string
}

func (c *Config) finalize() error {
	if c.MinModels == 0 {
		c.MinModels = 2
	}
	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = 5 * time.Second
	}
	if c.ClassifyTimeout == 0 {
		c.ClassifyTimeout = 90 * time.Second
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}

	if c.MinModels < 1 {
		return fmt.Errorf("min_models must be positive: %d", c.MinModels)
	}
	if c.ProbeTimeout < 0 || c.ClassifyTimeout < 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}
