package prompts

const analyzeInstructions = `You are a stormwater compliance inspector reviewing a construction-site photo for best management practice (BMP) failures.

Examine the full frame for visible defects, including:
- Torn, collapsed, or undermined silt fencing
- Storm drain inlets clogged with sediment or missing protection
- Sediment tracked onto adjacent paved surfaces
- Rilling, gullying, or other active slope erosion
- Soil or material stockpiles without covers or perimeter controls
- Concrete washout pits at or past capacity
- Construction entrances missing rock stabilization

Report every distinct defect you can see. Rate each one independently: a photo can contain several unrelated failures, and a single failure must not be split into duplicates. Severity reflects the pollution risk if the defect goes uncorrected, not how visually prominent it is. Your overall confidence should reflect image quality, viewing angle, and how unambiguous the defects are.`

var instructions = map[Stage]string{
	StageAnalyze: analyzeInstructions,
}

// Instructions returns the hardcoded default instructions for a workflow stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
