package checklists

import (
	"fmt"

	"github.com/stormsift/stormsift/internal/ensemble"
)

var correctiveActions = map[ensemble.DefectClass]string{
	ensemble.DefectSiltFenceTear:           "Repair or replace the damaged silt fence section and re-key the fabric into the soil",
	ensemble.DefectInletClogged:            "Clear sediment from the inlet and restore or install inlet protection",
	ensemble.DefectSedimentTracking:        "Sweep tracked sediment from paved surfaces and reinforce the exit stabilization",
	ensemble.DefectSlopeErosion:            "Regrade eroded areas and apply erosion control matting or temporary seeding",
	ensemble.DefectUncoveredStockpile:      "Cover the stockpile and install perimeter sediment controls around its base",
	ensemble.DefectConcreteWashoutOverflow: "Pump down or replace the washout facility and remove spilled material",
	ensemble.DefectUnstabilizedEntrance:    "Install or replenish rock at the construction entrance to permit specifications",
}

// ItemsFromDetections builds one corrective action item per detection.
// Unknown defect classes get a generic investigation item so no finding is
// dropped from the checklist.
func ItemsFromDetections(detections []ensemble.Detection) []Item {
	items := make([]Item, 0, len(detections))

	for _, d := range detections {
		action, ok := correctiveActions[d.Class]
		if !ok {
			action = fmt.Sprintf("Investigate and remediate reported defect: %s", d.Description)
		}

		label := fmt.Sprintf("[%s] %s", d.Severity, action)
		items = append(items, Item{Label: label})
	}

	return items
}
