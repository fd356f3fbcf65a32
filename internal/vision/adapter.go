package vision

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/pkg/formatting"
)

// classifyResponse is the JSON schema every backend is instructed to return.
// Parsing failures count as an adapter failure for the invocation.
type classifyResponse struct {
	Detections  []detectionResponse `json:"detections"`
	IsCompliant bool                `json:"is_compliant"`
	Confidence  float64             `json:"confidence"`
}

type detectionResponse struct {
	DefectClass string                `json:"defect_class"`
	Confidence  float64               `json:"confidence"`
	Severity    string                `json:"severity"`
	BoundingBox *ensemble.BoundingBox `json:"bounding_box,omitempty"`
	Description string                `json:"description,omitempty"`
}

type adapter struct {
	id        string
	agentCfg  gaconfig.AgentConfig
	healthURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewAdapter creates an ensemble.Adapter for one configured vision backend.
func NewAdapter(s Settings, logger *slog.Logger) (ensemble.Adapter, error) {
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("vision adapter %s: %w", s.ID, err)
	}

	return &adapter{
		id:        s.ID,
		agentCfg:  s.agentConfig(),
		healthURL: s.healthURL(),
		client:    &http.Client{},
		logger:    logger.With("adapter", s.ID),
	}, nil
}

func (a *adapter) ModelID() string {
	return a.id
}

// Available probes the provider endpoint. Any transport error or server
// fault counts as unavailable; the caller bounds the probe via ctx.
func (a *adapter) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.healthURL, nil)
	if err != nil {
		return false
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}

func (a *adapter) Classify(
	ctx context.Context,
	img ensemble.Image,
	prompt string,
) (*ensemble.ModelResult, error) {
	start := time.Now()

	ag, err := agent.New(&a.agentCfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	dataURI, err := encodeImage(img)
	if err != nil {
		return nil, err
	}

	resp, err := ag.Vision(ctx, prompt, []string{dataURI})
	if err != nil {
		return nil, fmt.Errorf("vision call: %w", err)
	}

	content := resp.Content()
	parsed, err := formatting.Parse[classifyResponse](content)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	result := toModelResult(a.id, parsed, content, time.Since(start).Milliseconds())

	a.logger.Debug(
		"classification complete",
		"detections", len(result.Detections),
		"compliant", result.IsCompliant,
		"duration_ms", result.ProcessingTimeMs,
	)

	return result, nil
}

func encodeImage(img ensemble.Image) (string, error) {
	format := document.JPEG
	if img.ContentType == "image/png" {
		format = document.PNG
	}

	dataURI, err := encoding.EncodeImageDataURI(img.Data, format)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return dataURI, nil
}

func toModelResult(
	modelID string,
	resp classifyResponse,
	raw string,
	elapsedMs int64,
) *ensemble.ModelResult {
	detections := make([]ensemble.Detection, 0, len(resp.Detections))
	for _, d := range resp.Detections {
		detections = append(detections, ensemble.Detection{
			Class:       ensemble.ParseDefectClass(d.DefectClass),
			Confidence:  clamp01(d.Confidence),
			Severity:    ensemble.ParseSeverity(d.Severity),
			BoundingBox: d.BoundingBox,
			Description: d.Description,
		})
	}

	return &ensemble.ModelResult{
		ModelID:          modelID,
		Detections:       detections,
		IsCompliant:      resp.IsCompliant,
		Confidence:       clamp01(resp.Confidence),
		RawResponse:      raw,
		ProcessingTimeMs: elapsedMs,
	}
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
