package prompts

const analyzeSpec = `Respond with a JSON object matching this exact structure:

{
  "detections": [
    {
      "defect_class": "<class>",
      "confidence": 0.0,
      "severity": "<low|medium|high|critical>",
      "bounding_box": {"x": 0, "y": 0, "width": 0, "height": 0},
      "description": "<explanation>"
    }
  ],
  "is_compliant": false,
  "confidence": 0.0
}

Field constraints:
- defect_class: One of silt_fence_tear, inlet_clogged, sediment_tracking,
  slope_erosion, uncovered_stockpile, concrete_washout_overflow,
  unstabilized_entrance. Use unknown only when a defect is clearly present
  but matches none of the listed classes.
- confidence (per detection): Probability in [0, 1] that the defect is
  actually present, not an estimate of its severity.
- severity: Pollution risk if the defect goes uncorrected. critical is
  reserved for active or imminent discharge to a drain or waterway.
- bounding_box: Pixel coordinates of the defect region, x and y measured
  from the top-left corner of the image. Omit the field entirely when the
  defect has no localized extent (e.g., sediment tracking across the frame).
- description: One or two sentences naming what is visible and why it
  constitutes a BMP failure.
- is_compliant: true only when the detections array is empty.
- confidence (top level): Overall probability in [0, 1] that your verdict
  is correct, reflecting image quality and ambiguity.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Report only defects visible in this photo; never infer conditions
  outside the frame
- Do not report the same physical defect twice under different classes
- An empty detections array with is_compliant true is the correct response
  for a photo with no visible failures`

var specs = map[Stage]string{
	StageAnalyze: analyzeSpec,
}

// Spec returns the hardcoded specification for a workflow stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
