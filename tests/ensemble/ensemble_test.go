package ensemble_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stormsift/stormsift/internal/ensemble"
)

type mockAdapter struct {
	id          string
	unavailable bool
	err         error
	delay       time.Duration
	panics      bool

	detections  []ensemble.Detection
	isCompliant bool
	confidence  float64

	mu         sync.Mutex
	lastPrompt string
}

func (m *mockAdapter) ModelID() string { return m.id }

func (m *mockAdapter) Available(ctx context.Context) bool {
	if m.panics {
		panic("probe exploded")
	}
	return !m.unavailable
}

func (m *mockAdapter) Classify(ctx context.Context, img ensemble.Image, prompt string) (*ensemble.ModelResult, error) {
	if m.panics {
		panic("classify exploded")
	}

	m.mu.Lock()
	m.lastPrompt = prompt
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.err != nil {
		return nil, m.err
	}

	return &ensemble.ModelResult{
		ModelID:     m.id,
		Detections:  m.detections,
		IsCompliant: m.isCompliant,
		Confidence:  m.confidence,
	}, nil
}

func (m *mockAdapter) prompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testImage() ensemble.Image {
	return ensemble.Image{Data: []byte{0xff, 0xd8}, ContentType: "image/jpeg"}
}

func compliant(id string, confidence float64) *mockAdapter {
	return &mockAdapter{id: id, isCompliant: true, confidence: confidence}
}

func newEngine(t *testing.T, cfg ensemble.Config, adapters ...ensemble.Adapter) *ensemble.Engine {
	t.Helper()
	e, err := ensemble.New(adapters, cfg, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		adapters []ensemble.Adapter
		cfg      ensemble.Config
		want     error
	}{
		{
			"no adapters",
			nil,
			ensemble.Config{},
			ensemble.ErrNoAdapters,
		},
		{
			"empty model id",
			[]ensemble.Adapter{&mockAdapter{id: ""}},
			ensemble.Config{},
			ensemble.ErrInvalidAdapter,
		},
		{
			"duplicate model id",
			[]ensemble.Adapter{&mockAdapter{id: "vision-a"}, &mockAdapter{id: "vision-a"}},
			ensemble.Config{},
			ensemble.ErrInvalidAdapter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ensemble.New(tt.adapters, tt.cfg, testLogger())
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewRejectsNegativeTimeouts(t *testing.T) {
	_, err := ensemble.New(
		[]ensemble.Adapter{&mockAdapter{id: "vision-a"}},
		ensemble.Config{ProbeTimeout: -time.Second},
		testLogger(),
	)
	if err == nil {
		t.Fatal("expected config error for negative timeout")
	}
}

func TestAnalyzeInsufficientModels(t *testing.T) {
	engine := newEngine(t, ensemble.Config{},
		compliant("vision-a", 0.9),
		&mockAdapter{id: "vision-b", unavailable: true},
	)

	result := engine.Analyze(context.Background(), testImage(), "")

	if !result.RequiresManualReview {
		t.Error("expected manual review")
	}
	if result.ReviewReason != ensemble.ReasonInsufficientModels {
		t.Errorf("reason = %q, want %q", result.ReviewReason, ensemble.ReasonInsufficientModels)
	}
	if result.ConsensusLevel != ensemble.ConsensusLow {
		t.Errorf("consensus = %q, want low", result.ConsensusLevel)
	}
	if len(result.Detections) != 0 || !result.IsCompliant {
		t.Error("short-circuit result must carry an empty detection list")
	}
	if len(result.ModelResults) != 0 {
		t.Errorf("model results = %d, want 0", len(result.ModelResults))
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", result.Confidence)
	}
}

func TestAnalyzeTooManyFailures(t *testing.T) {
	engine := newEngine(t, ensemble.Config{},
		compliant("vision-a", 0.9),
		&mockAdapter{id: "vision-b", err: errors.New("backend unreachable")},
	)

	result := engine.Analyze(context.Background(), testImage(), "")

	if result.ReviewReason != ensemble.ReasonTooManyFailures {
		t.Errorf("reason = %q, want %q", result.ReviewReason, ensemble.ReasonTooManyFailures)
	}
	if !result.RequiresManualReview {
		t.Error("expected manual review")
	}
	if len(result.ModelResults) != 1 {
		t.Fatalf("model results = %d, want the surviving model", len(result.ModelResults))
	}
	if result.ModelResults[0].ModelID != "vision-a" {
		t.Errorf("surviving model = %q", result.ModelResults[0].ModelID)
	}
	if result.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", result.Confidence)
	}
}

func TestAnalyzeResultsFollowConfiguredOrder(t *testing.T) {
	// The slowest adapter is configured first; completion order must not
	// reorder the results.
	slow := compliant("vision-slow", 0.9)
	slow.delay = 50 * time.Millisecond
	fast := compliant("vision-fast", 0.9)

	engine := newEngine(t, ensemble.Config{}, slow, fast)
	result := engine.Analyze(context.Background(), testImage(), "")

	want := []string{"vision-slow", "vision-fast"}
	got := result.ModelIDs()
	if len(got) != len(want) {
		t.Fatalf("model ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("model ids = %v, want %v", got, want)
			break
		}
	}
}

func TestAnalyzeCompliantConsensus(t *testing.T) {
	engine := newEngine(t, ensemble.Config{},
		compliant("vision-a", 0.9),
		compliant("vision-b", 0.86),
	)

	result := engine.Analyze(context.Background(), testImage(), "")

	if !result.IsCompliant {
		t.Error("expected compliant result")
	}
	if result.RequiresManualReview {
		t.Errorf("unexpected review: %s", result.ReviewReason)
	}
	if result.ConsensusLevel != ensemble.ConsensusHigh {
		t.Errorf("consensus = %q, want high", result.ConsensusLevel)
	}
	if got, want := result.Confidence, 0.88; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("confidence = %v, want %v", got, want)
	}
}

func TestAnalyzeMajorityDefect(t *testing.T) {
	tear := ensemble.Detection{
		Class:      ensemble.DefectSiltFenceTear,
		Confidence: 0.8,
		Severity:   ensemble.SeverityHigh,
	}
	stray := ensemble.Detection{
		Class:      ensemble.DefectSlopeErosion,
		Confidence: 0.7,
		Severity:   ensemble.SeverityLow,
	}

	a := &mockAdapter{id: "vision-a", detections: []ensemble.Detection{tear}, confidence: 0.9}
	b := &mockAdapter{id: "vision-b", detections: []ensemble.Detection{tear, stray}, confidence: 0.9}
	c := &mockAdapter{id: "vision-c", detections: []ensemble.Detection{tear}, confidence: 0.9}

	engine := newEngine(t, ensemble.Config{}, a, b, c)
	result := engine.Analyze(context.Background(), testImage(), "")

	if result.IsCompliant {
		t.Error("majority defect must make the result non-compliant")
	}
	if len(result.Detections) != 1 {
		t.Fatalf("detections = %d, want the majority class only", len(result.Detections))
	}
	if result.Detections[0].Class != ensemble.DefectSiltFenceTear {
		t.Errorf("class = %q", result.Detections[0].Class)
	}
}

func TestAnalyzeDisagreementForcesReview(t *testing.T) {
	clean := compliant("vision-a", 0.95)
	dirty := &mockAdapter{
		id:         "vision-b",
		confidence: 0.95,
		detections: []ensemble.Detection{{
			Class:      ensemble.DefectInletClogged,
			Confidence: 0.9,
			Severity:   ensemble.SeverityMedium,
		}},
	}

	engine := newEngine(t, ensemble.Config{}, clean, dirty)
	result := engine.Analyze(context.Background(), testImage(), "")

	if result.ConsensusLevel != ensemble.ConsensusLow {
		t.Errorf("consensus = %q, want low", result.ConsensusLevel)
	}
	if !result.RequiresManualReview {
		t.Error("expected manual review")
	}
	if result.ReviewReason != ensemble.ReasonModelDisagreement {
		t.Errorf("reason = %q, want %q", result.ReviewReason, ensemble.ReasonModelDisagreement)
	}
	// The split defect still meets the 0.5 vote floor and is retained.
	if len(result.Detections) != 1 {
		t.Errorf("detections = %d, want 1", len(result.Detections))
	}
	if result.IsCompliant {
		t.Error("retained detection must make the result non-compliant")
	}
}

func TestAnalyzePanicCountsAsFailure(t *testing.T) {
	engine := newEngine(t, ensemble.Config{},
		compliant("vision-a", 0.9),
		compliant("vision-b", 0.9),
		&mockAdapter{id: "vision-c", panics: true},
	)

	result := engine.Analyze(context.Background(), testImage(), "")

	if result.RequiresManualReview {
		t.Errorf("unexpected review: %s", result.ReviewReason)
	}
	if len(result.ModelResults) != 2 {
		t.Errorf("model results = %d, want 2", len(result.ModelResults))
	}
	for _, id := range result.ModelIDs() {
		if id == "vision-c" {
			t.Error("panicking adapter must not contribute a result")
		}
	}
}

func TestAnalyzeClassifyTimeout(t *testing.T) {
	stalled := compliant("vision-stalled", 0.9)
	stalled.delay = time.Second

	engine := newEngine(t, ensemble.Config{ClassifyTimeout: 20 * time.Millisecond},
		stalled,
		compliant("vision-a", 0.9),
	)

	result := engine.Analyze(context.Background(), testImage(), "")

	if result.ReviewReason != ensemble.ReasonTooManyFailures {
		t.Errorf("reason = %q, want %q", result.ReviewReason, ensemble.ReasonTooManyFailures)
	}
	if len(result.ModelResults) != 1 || result.ModelResults[0].ModelID != "vision-a" {
		t.Errorf("model ids = %v, want the unstalled model only", result.ModelIDs())
	}
}

func TestAnalyzePromptSelection(t *testing.T) {
	a := compliant("vision-a", 0.9)
	b := compliant("vision-b", 0.9)
	engine := newEngine(t, ensemble.Config{}, a, b)

	engine.Analyze(context.Background(), testImage(), "")
	if !strings.Contains(a.prompt(), "stormwater") {
		t.Errorf("blank prompt must fall back to the default, got %q", a.prompt())
	}

	engine.Analyze(context.Background(), testImage(), "inspect the silt fence")
	if b.prompt() != "inspect the silt fence" {
		t.Errorf("prompt = %q", b.prompt())
	}
}

func TestAnalyzeSingleModelFloor(t *testing.T) {
	engine := newEngine(t, ensemble.Config{MinModels: 1}, compliant("vision-a", 0.9))

	result := engine.Analyze(context.Background(), testImage(), "")

	if result.RequiresManualReview {
		t.Errorf("unexpected review: %s", result.ReviewReason)
	}
	if result.ConsensusLevel != ensemble.ConsensusHigh {
		t.Errorf("consensus = %q, want high", result.ConsensusLevel)
	}
}
