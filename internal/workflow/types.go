// Package workflow implements the photo analysis workflow for stormsift.
// It wires the ensemble engine into a state graph
// (init → analyze → escalate? → finalize) that fetches the inspection photo,
// runs the multi-model consensus analysis, routes low-trust results to the
// manual review queue, and scores site risk.
package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/internal/ensemble"
)

// State bag keys shared by the workflow nodes.
const (
	KeyInspectionID = "inspection_id"
	KeyImage        = "image"
	KeySiteID       = "site_id"
	KeyResult       = "ensemble_result"
	KeyEscalation   = "escalation"
	KeyRiskScore    = "risk_score"
	KeyRainFlag     = "rain_triggered"
)

// Escalation describes why an analysis was routed to a human reviewer.
type Escalation struct {
	Reason     string `json:"reason"`
	ModelCount int    `json:"model_count"`
}

// Result is the final output from an analysis workflow execution.
type Result struct {
	InspectionID  uuid.UUID        `json:"inspection_id"`
	SiteID        uuid.UUID        `json:"site_id"`
	Ensemble      *ensemble.Result `json:"ensemble"`
	RiskScore     float64          `json:"risk_score"`
	RainTriggered bool             `json:"rain_triggered"`
	Escalation    *Escalation      `json:"escalation,omitempty"`
	CompletedAt   time.Time        `json:"completed_at"`
}
