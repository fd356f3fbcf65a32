package ensemble

// voteBoost is the maximum multiplicative confidence bonus, reached at a
// unanimous vote ratio of 1.0.
const voteBoost = 0.2

// Consolidate reduces the flattened detections from all successful model
// results to one entry per defect class that a majority of models agree on.
//
// Detections are grouped by class only; severity and confidence differences
// never split a group. A class is retained iff votes/modelCount >= 0.5. The
// retained entry is the highest-confidence detection in its group (ties keep
// the first encountered, so output depends on input order, not on adapter
// completion order), with its confidence boosted by
// min(1, confidence * (1 + voteRatio*0.2)).
//
// The computation is pure: identical input always yields identical output.
func Consolidate(detections []Detection, modelCount int) []Detection {
	consolidated := make([]Detection, 0, len(detections))
	if len(detections) == 0 || modelCount < 1 {
		return consolidated
	}

	order := make([]DefectClass, 0, len(detections))
	groups := make(map[DefectClass][]Detection, len(detections))

	for _, d := range detections {
		if _, seen := groups[d.Class]; !seen {
			order = append(order, d.Class)
		}
		groups[d.Class] = append(groups[d.Class], d)
	}

	for _, class := range order {
		group := groups[class]
		ratio := float64(len(group)) / float64(modelCount)
		if ratio < 0.5 {
			continue
		}

		rep := group[0]
		for _, d := range group[1:] {
			if d.Confidence > rep.Confidence {
				rep = d
			}
		}

		rep.Confidence = min(1, rep.Confidence*(1+ratio*voteBoost))
		consolidated = append(consolidated, rep)
	}

	return consolidated
}

func flattenDetections(results []ModelResult) []Detection {
	var all []Detection
	for _, r := range results {
		all = append(all, r.Detections...)
	}
	return all
}
