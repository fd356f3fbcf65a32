package prompts_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stormsift/stormsift/internal/prompts"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    prompts.Stage
		wantErr bool
	}{
		{"analyze", "analyze", prompts.StageAnalyze, false},
		{"unknown stage", "enhance", "", true},
		{"empty", "", "", true},
		{"case sensitive", "Analyze", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prompts.ParseStage(tt.input)
			if tt.wantErr {
				if !errors.Is(err, prompts.ErrInvalidStage) {
					t.Errorf("got %v, want ErrInvalidStage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	var s prompts.Stage
	if err := json.Unmarshal([]byte(`"analyze"`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != prompts.StageAnalyze {
		t.Errorf("got %q", s)
	}

	if err := json.Unmarshal([]byte(`"classify"`), &s); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("got %v, want ErrInvalidStage", err)
	}
}

func TestDefaultInstructions(t *testing.T) {
	text, err := prompts.Instructions(prompts.StageAnalyze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "stormwater") {
		t.Error("analyze instructions must describe the inspection domain")
	}

	if _, err := prompts.Instructions(prompts.Stage("bogus")); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("got %v, want ErrInvalidStage", err)
	}
}

func TestDefaultSpec(t *testing.T) {
	text, err := prompts.Spec(prompts.StageAnalyze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, field := range []string{"detections", "defect_class", "is_compliant", "confidence"} {
		if !strings.Contains(text, field) {
			t.Errorf("analyze spec missing %q", field)
		}
	}

	if _, err := prompts.Spec(prompts.Stage("bogus")); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("got %v, want ErrInvalidStage", err)
	}
}

func TestStages(t *testing.T) {
	stages := prompts.Stages()
	if len(stages) != 1 || stages[0] != prompts.StageAnalyze {
		t.Errorf("got %v", stages)
	}
}
