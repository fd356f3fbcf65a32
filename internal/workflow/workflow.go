package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/stormsift/stormsift/internal/ensemble"
)

// Execute runs the analysis workflow for a single inspection photo. It builds
// the state graph (init → analyze → escalate? → finalize), executes it, and
// extracts the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, inspectionID uuid.UUID) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyInspectionID, inspectionID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("stormsift-analyze")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("init", InitNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("analyze", AnalyzeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("escalate", EscalateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// init → analyze (unconditional)
	if err := graph.AddEdge("init", "analyze", nil); err != nil {
		return nil, err
	}

	// analyze → escalate (when the ensemble demands manual review)
	if err := graph.AddEdge("analyze", "escalate", needsReview); err != nil {
		return nil, err
	}

	// analyze → finalize (when the result is trusted)
	if err := graph.AddEdge("analyze", "finalize", state.Not(needsReview)); err != nil {
		return nil, err
	}

	// escalate → finalize (unconditional)
	if err := graph.AddEdge("escalate", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("init"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	inspectionID, err := stateValue[uuid.UUID](s, KeyInspectionID)
	if err != nil {
		return nil, err
	}

	siteID, err := stateValue[uuid.UUID](s, KeySiteID)
	if err != nil {
		return nil, err
	}

	ensembleResult, err := stateValue[*ensemble.Result](s, KeyResult)
	if err != nil {
		return nil, err
	}

	riskScore, err := stateValue[float64](s, KeyRiskScore)
	if err != nil {
		return nil, err
	}

	rainTriggered, err := stateValue[bool](s, KeyRainFlag)
	if err != nil {
		return nil, err
	}

	result := &Result{
		InspectionID:  inspectionID,
		SiteID:        siteID,
		Ensemble:      ensembleResult,
		RiskScore:     riskScore,
		RainTriggered: rainTriggered,
		CompletedAt:   time.Now(),
	}

	if esc, err := stateValue[Escalation](s, KeyEscalation); err == nil {
		result.Escalation = &esc
	}

	return result, nil
}

func stateValue[T any](s state.State, key string) (T, error) {
	var zero T

	val, ok := s.Get(key)
	if !ok {
		return zero, fmt.Errorf("missing %s in state", key)
	}

	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%s has unexpected type %T", key, val)
	}

	return typed, nil
}

func needsReview(s state.State) bool {
	result, err := stateValue[*ensemble.Result](s, KeyResult)
	if err != nil {
		return false
	}
	return result.RequiresManualReview
}
