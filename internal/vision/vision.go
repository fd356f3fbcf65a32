// Package vision provides ensemble.Adapter implementations over go-agents
// vision providers. One adapter wraps one configured backend; the backend's
// wire protocol, authentication, and response heuristics live entirely behind
// the go-agents provider layer.
package vision

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/stormsift/stormsift/internal/ensemble"
)

// Settings configures one vision backend adapter.
type Settings struct {
	ID         string         `toml:"id"`
	Provider   string         `toml:"provider"`
	BaseURL    string         `toml:"base_url"`
	Model      string         `toml:"model"`
	HealthPath string         `toml:"health_path"`
	Options    map[string]any `toml:"options"`
}

// Merge overwrites non-zero fields from overlay.
func (s *Settings) Merge(overlay *Settings) {
	if overlay.Provider != "" {
		s.Provider = overlay.Provider
	}
	if overlay.BaseURL != "" {
		s.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		s.Model = overlay.Model
	}
	if overlay.HealthPath != "" {
		s.HealthPath = overlay.HealthPath
	}
	if overlay.Options != nil {
		s.Options = overlay.Options
	}
}

func (s *Settings) validate() error {
	if s.ID == "" {
		return fmt.Errorf("id required")
	}
	if s.Provider == "" {
		return fmt.Errorf("provider required")
	}
	if s.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if s.Model == "" {
		return fmt.Errorf("model required")
	}
	return nil
}

func (s *Settings) agentConfig() gaconfig.AgentConfig {
	cfg := gaconfig.AgentConfig{
		Name: s.ID,
		Provider: &gaconfig.ProviderConfig{
			Name:    s.Provider,
			BaseURL: s.BaseURL,
			Options: s.Options,
		},
		Model: &gaconfig.ModelConfig{
			Name: s.Model,
		},
	}

	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(&cfg)
	return defaults
}

func (s *Settings) healthURL() string {
	path := s.HealthPath
	if path == "" {
		path = "/"
	}
	u, err := url.JoinPath(s.BaseURL, path)
	if err != nil {
		return strings.TrimSuffix(s.BaseURL, "/") + path
	}
	return u
}

// NewAdapters constructs one adapter per settings entry, in order.
// Configured order is significant: the engine joins results in this order.
func NewAdapters(settings []Settings, logger *slog.Logger) ([]ensemble.Adapter, error) {
	adapters := make([]ensemble.Adapter, len(settings))
	for i, s := range settings {
		a, err := NewAdapter(s, logger)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i, err)
		}
		adapters[i] = a
	}
	return adapters, nil
}
