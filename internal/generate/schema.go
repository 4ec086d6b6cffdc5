package generate

import "github.com/quizforge/quizforge/internal/llm"

// itemSchema constrains the model to structured operands plus prose.
// The answer is deliberately absent from the schema: the model never
// supplies one, it is computed from the operands after the fact.
var itemSchema = &llm.Schema{
	Name:        "quiz-item",
	Description: "A single math practice question with structured operands",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type": "string",
				"enum": []any{
					"addition", "subtraction", "multiplication", "division",
					"fraction_addition", "fraction_subtraction", "comparison",
				},
				"description": "Problem category",
			},
			"operands": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    2,
				"description": "Numeric operands in problem order, e.g. [\"7\", \"5\"] or [\"1/3\", \"1/4\"]",
			},
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question as shown to the student, using exactly the operands above",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step explanation referencing the operands and stating the final result",
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "For multiple choice only: four candidate answers including the correct one",
			},
		},
		"required":             []any{"category", "operands", "question_text", "explanation"},
		"additionalProperties": false,
	},
}
