package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/stormsift/stormsift/internal/vision"
)

const (
	EnvVisionMinModels       = "STORMSIFT_VISION_MIN_MODELS"
	EnvVisionProbeTimeout    = "STORMSIFT_VISION_PROBE_TIMEOUT"
	EnvVisionClassifyTimeout = "STORMSIFT_VISION_CLASSIFY_TIMEOUT"
)

// VisionConfig holds ensemble engine policy and the vision backend roster.
// Models come from TOML only; per-model secrets belong in each entry's
// options table.
type VisionConfig struct {
	MinModels       int               `toml:"min_models"`
	ProbeTimeout    string            `toml:"probe_timeout"`
	ClassifyTimeout string            `toml:"classify_timeout"`
	Models          []vision.Settings `toml:"models"`
}

// ProbeTimeoutDuration returns ProbeTimeout as a time.Duration.
func (c *VisionConfig) ProbeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ProbeTimeout)
	return d
}

// ClassifyTimeoutDuration returns ClassifyTimeout as a time.Duration.
func (c *VisionConfig) ClassifyTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ClassifyTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *VisionConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Overlay models merge by ID;
// unmatched overlay entries append to the roster.
func (c *VisionConfig) Merge(overlay *VisionConfig) {
	if overlay.MinModels != 0 {
		c.MinModels = overlay.MinModels
	}
	if overlay.ProbeTimeout != "" {
		c.ProbeTimeout = overlay.ProbeTimeout
	}
	if overlay.ClassifyTimeout != "" {
		c.ClassifyTimeout = overlay.ClassifyTimeout
	}

	for i := range overlay.Models {
		if existing := c.findModel(overlay.Models[i].ID); existing != nil {
			existing.Merge(&overlay.Models[i])
			continue
		}
		c.Models = append(c.Models, overlay.Models[i])
	}
}

func (c *VisionConfig) findModel(id string) *vision.Settings {
	for i := range c.Models {
		if c.Models[i].ID == id {
			return &c.Models[i]
		}
	}
	return nil
}

func (c *VisionConfig) loadDefaults() {
	if c.MinModels == 0 {
		c.MinModels = 2
	}
	if c.ProbeTimeout == "" {
		c.ProbeTimeout = "5s"
	}
	if c.ClassifyTimeout == "" {
		c.ClassifyTimeout = "90s"
	}
}

func (c *VisionConfig) loadEnv() {
	if v := os.Getenv(EnvVisionMinModels); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MinModels = n
		}
	}
	if v := os.Getenv(EnvVisionProbeTimeout); v != "" {
		c.ProbeTimeout = v
	}
	if v := os.Getenv(EnvVisionClassifyTimeout); v != "" {
		c.ClassifyTimeout = v
	}
}

func (c *VisionConfig) validate() error {
	if c.MinModels < 1 {
		return fmt.Errorf("min_models must be positive: %d", c.MinModels)
	}
	if _, err := time.ParseDuration(c.ProbeTimeout); err != nil {
		return fmt.Errorf("invalid probe_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ClassifyTimeout); err != nil {
		return fmt.Errorf("invalid classify_timeout: %w", err)
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("at least one vision model required")
	}
	return nil
}
