// Package generate produces candidate items from a model behind a
// structured-output schema. The model supplies the narrative and the
// operands; the authoritative answer is always recomputed locally so a
// hallucinated answer is caught before the candidate leaves this
// package.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/calibrate"
	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/retrieval"
	"github.com/quizforge/quizforge/internal/validate"
)

// Input carries everything one generation attempt needs. Feedback is
// empty on the first attempt and holds the previous attempt's
// validation issues on retries.
type Input struct {
	Request     item.Request
	Calibration calibrate.Params
	Exemplars   []retrieval.Exemplar
	Feedback    []validate.Issue
}

// Generator produces one candidate item per call.
type Generator interface {
	Generate(ctx context.Context, in Input) (*item.Item, error)
}

// DefectError marks a failure caused by defective model output rather
// than infrastructure. Defects consume a retry; transient errors are
// handled by the provider's own retry layer and surface here only
// after it gives up.
type DefectError struct {
	Reason string
	Err    error
}

func (e *DefectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation defect: %s: %v", e.Reason, e.Err)
	}
	return "generation defect: " + e.Reason
}

func (e *DefectError) Unwrap() error { return e.Err }

// IsDefect reports whether err represents defective model output.
func IsDefect(err error) bool {
	var d *DefectError
	return errors.As(err, &d)
}

// LLMGenerator drives a provider with a JSON schema and post-processes
// the raw candidate.
type LLMGenerator struct {
	provider    llm.Provider
	distractors DistractorPolicy
	temperature float64
	maxTokens   int
}

type Option func(*LLMGenerator)

// WithDistractorPolicy overrides how multiple-choice distractors are
// produced.
func WithDistractorPolicy(p DistractorPolicy) Option {
	return func(g *LLMGenerator) { g.distractors = p }
}

func WithTemperature(t float64) Option {
	return func(g *LLMGenerator) { g.temperature = t }
}

func NewLLMGenerator(provider llm.Provider, opts ...Option) *LLMGenerator {
	g := &LLMGenerator{
		provider:    provider,
		distractors: ArithmeticDistractors{},
		temperature: 0.7,
		maxTokens:   1024,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// rawCandidate mirrors the generation schema.
type rawCandidate struct {
	Category     string   `json:"category"`
	Operands     []string `json:"operands"`
	QuestionText string   `json:"question_text"`
	Explanation  string   `json:"explanation"`
	Choices      []string `json:"choices,omitempty"`
}

func (g *LLMGenerator) Generate(ctx context.Context, in Input) (*item.Item, error) {
	ctx = llm.WithPurpose(ctx, "item-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt(in),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt(in)},
		},
		Schema:      itemSchema,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var invalid *llm.ErrInvalidResponse
		var maxTok *llm.ErrMaxTokensExceeded
		if errors.As(err, &invalid) || errors.As(err, &maxTok) {
			return nil, &DefectError{Reason: "model returned unusable output", Err: err}
		}
		return nil, fmt.Errorf("generate item: %w", err)
	}

	var raw rawCandidate
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &DefectError{Reason: "response is not valid JSON", Err: err}
	}
	return g.assemble(in, raw)
}

// assemble turns the raw model output into a full item. The answer is
// computed here, never copied from the model, so the non-null answer
// guarantee holds for every candidate this generator emits.
func (g *LLMGenerator) assemble(in Input, raw rawCandidate) (*item.Item, error) {
	cat := item.Category(raw.Category)
	wantCat, ok := item.CategoryFromTopic(in.Request.Topic)
	if !ok {
		return nil, &DefectError{Reason: fmt.Sprintf("unsupported topic %q", in.Request.Topic)}
	}
	if cat != wantCat {
		return nil, &DefectError{Reason: fmt.Sprintf("model produced category %q, wanted %q", cat, wantCat)}
	}
	if len(raw.Operands) < 2 {
		return nil, &DefectError{Reason: fmt.Sprintf("model produced %d operands", len(raw.Operands))}
	}
	if strings.TrimSpace(raw.QuestionText) == "" {
		return nil, &DefectError{Reason: "model produced empty question text"}
	}
	if err := checkEnvelope(raw.Operands, in.Calibration); err != nil {
		return nil, &DefectError{Reason: "operands outside the calibrated range", Err: err}
	}

	answer, answerType, err := item.Compute(cat, raw.Operands)
	if err != nil {
		return nil, &DefectError{Reason: "operands are not computable", Err: err}
	}
	if answer == "" || item.IsPlaceholderAnswer(answer) {
		return nil, &DefectError{Reason: fmt.Sprintf("computed answer %q is unusable", answer)}
	}

	format := in.Request.Format
	if format == "" {
		format = item.FormatNumeric
	}
	it := &item.Item{
		ID:          uuid.NewString(),
		Category:    cat,
		Operands:    raw.Operands,
		Answer:      answer,
		AnswerType:  answerType,
		Format:      format,
		Text:        strings.TrimSpace(raw.QuestionText),
		Explanation: strings.TrimSpace(raw.Explanation),
		GradeLevel:  in.Request.GradeLevel,
		Difficulty:  in.Request.Difficulty,
	}

	if it.Format == item.FormatMultipleChoice {
		choices, err := g.distractors.Choices(it, raw.Choices)
		if err != nil {
			return nil, &DefectError{Reason: "could not build answer choices", Err: err}
		}
		it.Choices = choices
	}

	return it, nil
}

// checkEnvelope rejects operands the calibration envelope never asked
// for. The model is prompted with the range, but nothing forces it to
// comply, so the magnitude cap and the denominator cap are enforced
// here before any value reaches Compute.
func checkEnvelope(operands []string, p calibrate.Params) error {
	for _, op := range operands {
		if num, den, err := item.ParseFraction(op); err == nil {
			if p.MaxDenominator > 0 && den > p.MaxDenominator {
				return fmt.Errorf("operand %q: denominator %d exceeds %d", op, den, p.MaxDenominator)
			}
			if p.MaxOperand > 0 && float64(abs64(num)) > float64(p.MaxOperand)*float64(den) {
				return fmt.Errorf("operand %q exceeds magnitude %d", op, p.MaxOperand)
			}
			continue
		}
		v, err := strconv.ParseFloat(op, 64)
		if err != nil {
			continue // Compute reports unparseable operands with more detail
		}
		if p.MaxOperand > 0 && (v > float64(p.MaxOperand) || v < -float64(p.MaxOperand)) {
			return fmt.Errorf("operand %q exceeds magnitude %d", op, p.MaxOperand)
		}
	}
	return nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
