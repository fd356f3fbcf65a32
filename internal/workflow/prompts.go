package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/stormsift/stormsift/internal/prompts"
)

// ComposePrompt builds a vision prompt by combining tunable instructions with
// the immutable response specification for a workflow stage. Instructions
// resolve to the active database override when one exists.
func ComposePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	return sb.String(), nil
}
