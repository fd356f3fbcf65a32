package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/internal/risk"
)

// FinalizeNode returns a state node that checks recent rainfall for the site
// and scores the analysis risk. A rainfall lookup failure degrades to the dry
// multiplier rather than failing the workflow; the verdict already exists and
// a weather outage should not discard it.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		result, err := stateValue[*ensemble.Result](s, KeyResult)
		if err != nil {
			return s, fmt.Errorf("finalize: %w: %w", ErrFinalizeFailed, err)
		}

		siteID, err := stateValue[uuid.UUID](s, KeySiteID)
		if err != nil {
			return s, fmt.Errorf("finalize: %w: %w", ErrFinalizeFailed, err)
		}

		rain, err := rt.Weather.RainTriggered(ctx, siteID)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "rainfall lookup failed, scoring as dry",
				"site_id", siteID,
				"error", err,
			)
			rain = false
		}

		score := risk.Score(result.Detections, rain)

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"site_id", siteID,
			"risk_score", score,
			"rain_triggered", rain,
		)

		s = s.Set(KeyRiskScore, score)
		s = s.Set(KeyRainFlag, rain)
		return s, nil
	})
}
