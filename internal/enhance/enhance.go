// Package enhance optionally rewrites an accepted item's prose. The
// structured fields are frozen: the enhancer may replace the question
// text and explanation, never the category, operands, answer, or
// choices. Enhancement is best-effort and never fails the pipeline; a
// rewrite that does not hold up is discarded and the validated item
// ships as-is.
package enhance

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/validate"
)

// Enhancer polishes item prose with a model.
type Enhancer struct {
	provider  llm.Provider
	validator *validate.Validator
	maxTokens int
}

type Option func(*Enhancer)

// WithValidator sets the validator whose structural and correctness
// checks every rewrite must clear, so the enhancer enforces the same
// bounds the pipeline validated the original item against.
func WithValidator(v *validate.Validator) Option {
	return func(e *Enhancer) { e.validator = v }
}

func New(provider llm.Provider, opts ...Option) *Enhancer {
	e := &Enhancer{
		provider:  provider,
		validator: validate.New(validate.Config{}),
		maxTokens: 1024,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var rewriteSchema = &llm.Schema{
	Name:        "item-rewrite",
	Description: "Improved question text and explanation for an existing problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "Rewritten question using exactly the same numbers",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Rewritten step-by-step explanation stating the same final result",
			},
		},
		"required":             []any{"question_text", "explanation"},
		"additionalProperties": false,
	},
}

type rewrite struct {
	QuestionText string `json:"question_text"`
	Explanation  string `json:"explanation"`
}

// Enhance returns the item with improved prose, or the original item
// untouched when the rewrite fails or does not preserve the problem.
// The returned item's Answer, Operands, Category, and Choices are
// always identical to the input's.
func (e *Enhancer) Enhance(ctx context.Context, it *item.Item, persona *item.Persona) *item.Item {
	if e == nil || e.provider == nil {
		return it
	}
	ctx = llm.WithPurpose(ctx, "enhance")

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: enhanceSystemPrompt(persona),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: enhanceUserPrompt(it)},
		},
		Schema:      rewriteSchema,
		MaxTokens:   e.maxTokens,
		Temperature: 0.8,
	})
	if err != nil {
		return it
	}

	var rw rewrite
	if err := json.Unmarshal(resp.Content, &rw); err != nil {
		return it
	}
	rw.QuestionText = strings.TrimSpace(rw.QuestionText)
	rw.Explanation = strings.TrimSpace(rw.Explanation)

	if !rewriteHolds(it, rw) {
		return it
	}

	out := *it
	out.Text = rw.QuestionText
	out.Explanation = rw.Explanation

	// A rewrite must clear the same structural and correctness checks
	// the original item passed, including the text length bounds.
	res := e.validator.Validate(&out, nil)
	if !res.Structural || !res.Correctness {
		return it
	}
	return &out
}

// rewriteHolds re-runs the prose-level checks on the rewritten copy:
// non-empty text, every operand still present in the question, and the
// explanation still stating the answer. A rewrite that drops a number
// has changed the problem and is rejected.
func rewriteHolds(it *item.Item, rw rewrite) bool {
	if rw.QuestionText == "" || rw.Explanation == "" {
		return false
	}
	for _, op := range it.Operands {
		if !strings.Contains(rw.QuestionText, op) {
			return false
		}
	}
	if !strings.Contains(rw.Explanation, it.Answer) {
		return false
	}
	return true
}

func enhanceSystemPrompt(persona *item.Persona) string {
	var b strings.Builder
	b.WriteString("You polish math word problems for schoolchildren. ")
	b.WriteString("Rewrite the question and explanation to be clearer and more engaging. ")
	b.WriteString("Keep every number exactly as given and keep the final result the same. ")
	b.WriteString("Never change what is being computed.")
	if persona != nil {
		if len(persona.Interests) > 0 {
			b.WriteString(" Themes the student enjoys: ")
			b.WriteString(strings.Join(persona.Interests, ", "))
			b.WriteString(".")
		}
		if persona.LearningStyle != "" {
			b.WriteString(" Learning style: ")
			b.WriteString(persona.LearningStyle)
			b.WriteString(".")
		}
	}
	return b.String()
}

func enhanceUserPrompt(it *item.Item) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(it.Text)
	b.WriteString("\nExplanation: ")
	b.WriteString(it.Explanation)
	b.WriteString("\nNumbers that must stay: ")
	b.WriteString(strings.Join(it.Operands, ", "))
	b.WriteString("\nResult that must stay: ")
	b.WriteString(it.Answer)
	b.WriteString("\n")
	return b.String()
}
