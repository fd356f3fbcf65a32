package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/internal/prompts"
)

// AnalyzeNode returns a state node that runs the multi-model ensemble against
// the inspection photo. The engine absorbs adapter failures internally; the
// node fails only when the prompt cannot be composed or state is malformed.
func AnalyzeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		img, err := stateValue[ensemble.Image](s, KeyImage)
		if err != nil {
			return s, fmt.Errorf("analyze: %w: %w", ErrAnalyzeFailed, err)
		}

		prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageAnalyze)
		if err != nil {
			return s, fmt.Errorf("analyze: %w: %w", ErrAnalyzeFailed, err)
		}

		result := rt.Engine.Analyze(ctx, img, prompt)

		rt.Logger.InfoContext(
			ctx, "analyze node complete",
			"models", len(result.ModelResults),
			"detections", len(result.Detections),
			"consensus", result.ConsensusLevel,
			"compliant", result.IsCompliant,
			"elapsed_ms", result.ProcessingTimeMs,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}
