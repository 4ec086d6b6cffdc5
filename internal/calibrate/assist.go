package calibrate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/llm"
)

// paramsSchema constrains the model-assisted refinement output.
var paramsSchema = &llm.Schema{
	Name:        "calibration-params",
	Description: "Refined numeric bounds for problem generation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"min_operand": map[string]any{
				"type":        "integer",
				"description": "Smallest operand value to use",
			},
			"max_operand": map[string]any{
				"type":        "integer",
				"description": "Largest operand value to use",
			},
			"complexity": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "Complexity ceiling from 1 (trivial) to 5 (challenging)",
			},
		},
		"required":             []any{"min_operand", "max_operand", "complexity"},
		"additionalProperties": false,
	},
}

const assistSystemPrompt = `You tune difficulty bounds for math practice problems.
Given a learner profile and baseline bounds, suggest refined operand ranges and a complexity ceiling.
Stay close to the baseline; never widen the range by more than a factor of two.`

type refinedOutput struct {
	MinOperand int64 `json:"min_operand"`
	MaxOperand int64 `json:"max_operand"`
	Complexity int   `json:"complexity"`
}

// refine asks the model to adjust the table baseline for this learner.
// Any error, timeout, or out-of-bounds suggestion falls back to the
// caller's deterministic baseline.
func (c *Calibrator) refine(ctx context.Context, base Params, persona *item.Persona, req item.Request) (Params, error) {
	ctx = llm.WithPurpose(ctx, "calibrate")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: assistSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAssistMessage(base, persona, req)},
		},
		Schema:    paramsSchema,
		MaxTokens: 256,
	})
	if err != nil {
		return Params{}, err
	}

	var out refinedOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Params{}, fmt.Errorf("parse calibration response: %w", err)
	}

	if err := checkRefinement(base, out); err != nil {
		return Params{}, err
	}

	refined := base
	refined.MinOperand = out.MinOperand
	refined.MaxOperand = out.MaxOperand
	refined.ComplexityCap = out.Complexity
	return refined, nil
}

// checkRefinement rejects suggestions that escape the baseline envelope.
func checkRefinement(base Params, out refinedOutput) error {
	if out.MinOperand >= out.MaxOperand {
		return fmt.Errorf("degenerate range [%d, %d]", out.MinOperand, out.MaxOperand)
	}
	if out.Complexity < 1 || out.Complexity > 5 {
		return fmt.Errorf("complexity %d out of range", out.Complexity)
	}
	span := base.MaxOperand - base.MinOperand
	if out.MaxOperand-out.MinOperand > 2*span {
		return fmt.Errorf("suggested range wider than allowed")
	}
	if !base.AllowNegative && out.MinOperand < 0 {
		return fmt.Errorf("negative operands not allowed at this grade")
	}
	return nil
}

func buildAssistMessage(base Params, persona *item.Persona, req item.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nGrade: %d\nDifficulty: %s\n", req.Topic, req.GradeLevel, req.Difficulty)
	fmt.Fprintf(&b, "Baseline operand range: [%d, %d]\nBaseline complexity: %d\n",
		base.MinOperand, base.MaxOperand, base.ComplexityCap)
	if persona != nil {
		fmt.Fprintf(&b, "Learning style: %s\n", persona.LearningStyle)
		if len(persona.Strengths) > 0 {
			fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(persona.Strengths, ", "))
		}
	}
	return b.String()
}
