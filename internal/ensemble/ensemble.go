// Package ensemble implements the multi-model vision consensus engine.
// It submits one inspection photo to several independent defect-classification
// backends in parallel, tolerates partial failure, reconciles disagreeing
// outputs through majority voting with confidence boosting, and decides
// whether the result can be auto-filed or must be escalated to a human
// reviewer.
//
// The engine is a pure in-process orchestration library: it owns no wire
// format and persists nothing. Each Analyze call is stateless and
// independent; concurrent invocations share no mutable state.
package ensemble

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Engine coordinates a configured set of classifier adapters.
type Engine struct {
	adapters []Adapter
	cfg      Config
	logger   *slog.Logger
}

// New creates an Engine over the given adapters. It fails on an empty
// adapter set, a duplicate or empty model identifier, or invalid config;
// these are fatal precondition violations, not runtime conditions.
func New(adapters []Adapter, cfg Config, logger *slog.Logger) (*Engine, error) {
	if len(adapters) == 0 {
		return nil, ErrNoAdapters
	}

	seen := make(map[string]bool, len(adapters))
	for _, a := range adapters {
		id := a.ModelID()
		if id == "" {
			return nil, fmt.Errorf("%w: empty model id", ErrInvalidAdapter)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate model id %s", ErrInvalidAdapter, id)
		}
		seen[id] = true
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("ensemble config: %w", err)
	}

	return &Engine{
		adapters: adapters,
		cfg:      cfg,
		logger:   logger.With("system", "ensemble"),
	}, nil
}

// Analyze runs the full orchestration for one image: availability probe,
// parallel classification, vote consolidation, consensus classification,
// and result assembly. A blank prompt selects the configured default.
//
// Adapter-level failures never surface as errors; every degraded condition
// (unavailable backends, call failures, disagreement) is represented as data
// on the returned Result.
func (e *Engine) Analyze(ctx context.Context, img Image, prompt string) *Result {
	start := time.Now()

	if prompt == "" {
		prompt = e.cfg.Prompt
	}

	available := e.probe(ctx)
	if len(available) < e.cfg.MinModels {
		e.logger.Warn(
			"insufficient models available",
			"available", len(available),
			"required", e.cfg.MinModels,
		)
		return reviewResult(start, nil, ReasonInsufficientModels)
	}

	results := e.classify(ctx, available, img, prompt)
	if len(results) < e.cfg.MinModels {
		e.logger.Warn(
			"too many model failures",
			"succeeded", len(results),
			"invoked", len(available),
			"required", e.cfg.MinModels,
		)
		return reviewResult(start, results, ReasonTooManyFailures)
	}

	detections := Consolidate(flattenDetections(results), len(results))
	level := Consensus(results)

	result := &Result{
		Detections:       detections,
		IsCompliant:      len(detections) == 0,
		Confidence:       MeanConfidence(results),
		ConsensusLevel:   level,
		ModelResults:     results,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}

	if level == ConsensusLow {
		result.RequiresManualReview = true
		result.ReviewReason = ReasonModelDisagreement
	}

	e.logger.Info(
		"ensemble analysis complete",
		"models", len(results),
		"detections", len(detections),
		"compliant", result.IsCompliant,
		"consensus", result.ConsensusLevel,
		"review", result.RequiresManualReview,
		"duration_ms", result.ProcessingTimeMs,
	)

	return result
}

// probe checks every adapter's availability concurrently and returns the
// responsive subset in configured order. A probe that fails, times out, or
// panics marks its adapter unavailable; nothing propagates.
func (e *Engine) probe(ctx context.Context) []Adapter {
	available := make([]bool, len(e.adapters))

	var g errgroup.Group
	for i, a := range e.adapters {
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, e.cfg.ProbeTimeout)
			defer cancel()
			available[i] = safeAvailable(probeCtx, a)
			return nil
		})
	}
	g.Wait()

	subset := make([]Adapter, 0, len(e.adapters))
	for i, ok := range available {
		if ok {
			subset = append(subset, e.adapters[i])
		}
	}
	return subset
}

// classify invokes every available adapter concurrently and joins on all of
// them: a full barrier, not a race. One adapter's failure or timeout never
// cancels its siblings. Successes are returned in configured-adapter order
// so downstream consolidation is deterministic regardless of completion
// order.
func (e *Engine) classify(
	ctx context.Context,
	adapters []Adapter,
	img Image,
	prompt string,
) []ModelResult {
	slots := make([]*ModelResult, len(adapters))
	failures := make([]error, len(adapters))

	var g errgroup.Group
	for i, a := range adapters {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, e.cfg.ClassifyTimeout)
			defer cancel()
			slots[i], failures[i] = safeClassify(callCtx, a, img, prompt)
			return nil
		})
	}
	g.Wait()

	results := make([]ModelResult, 0, len(adapters))
	for i, r := range slots {
		if r == nil {
			e.logger.Warn(
				"model classification failed",
				"model", adapters[i].ModelID(),
				"error", failures[i],
			)
			continue
		}
		results = append(results, *r)
	}
	return results
}

// safeAvailable contains a panicking adapter; a panic counts as unavailable.
func safeAvailable(ctx context.Context, a Adapter) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return a.Available(ctx)
}

// safeClassify contains a panicking adapter; a panic counts as a failed call.
func safeClassify(
	ctx context.Context,
	a Adapter,
	img Image,
	prompt string,
) (result *ModelResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("adapter %s panicked: %v", a.ModelID(), r)
		}
	}()

	result, err = a.Classify(ctx, img, prompt)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("adapter %s returned no result", a.ModelID())
	}
	return result, nil
}

func reviewResult(start time.Time, results []ModelResult, reason string) *Result {
	if results == nil {
		results = []ModelResult{}
	}
	// IsCompliant tracks the (empty) detection list even on the review path;
	// RequiresManualReview prevents callers from auto-filing it.
	return &Result{
		Detections:           []Detection{},
		IsCompliant:          true,
		Confidence:           MeanConfidence(results),
		ConsensusLevel:       ConsensusLow,
		RequiresManualReview: true,
		ReviewReason:         reason,
		ModelResults:         results,
		ProcessingTimeMs:     time.Since(start).Milliseconds(),
	}
}
