package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/stormsift/stormsift/internal/ensemble"
)

// EscalateNode returns a state node that records why an analysis was routed
// to manual review. The ensemble result is carried through unmodified; the
// escalation record is what the review queue surfaces to inspectors.
func EscalateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		result, err := stateValue[*ensemble.Result](s, KeyResult)
		if err != nil {
			return s, fmt.Errorf("escalate: %w", err)
		}

		escalation := Escalation{
			Reason:     result.ReviewReason,
			ModelCount: len(result.ModelResults),
		}

		rt.Logger.WarnContext(
			ctx, "analysis escalated to manual review",
			"reason", escalation.Reason,
			"models", escalation.ModelCount,
		)

		s = s.Set(KeyEscalation, escalation)
		return s, nil
	})
}
