package calibrate

import (
	"context"

	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/llm"
)

// Params are the generation bounds for one item pipeline. Derived
// deterministically from grade and difficulty, optionally refined by a
// model-assisted pass. Confidence is always in (0,1].
type Params struct {
	// Operand magnitude bounds (inclusive).
	MinOperand int64
	MaxOperand int64

	// MaxOperands caps how many operands a generated problem may use.
	MaxOperands int

	// AllowNegative permits negative results (subtraction).
	AllowNegative bool

	// AllowFractions permits fraction operands and answers.
	AllowFractions bool

	// MaxDenominator bounds fraction denominators when fractions are allowed.
	MaxDenominator int64

	// ComplexityCap is a 1-5 ceiling on problem complexity.
	ComplexityCap int

	// Confidence reflects how the params were derived: highest for a
	// successful model-assisted pass, lowest (but never zero) when the
	// model pass failed and the table fallback was used.
	Confidence float64
}

// Confidence levels by derivation path.
const (
	confidenceTable    = 0.90
	confidenceAssisted = 0.95
	confidenceFallback = 0.60
)

// Calibrator derives generation bounds. The zero-provider form is fully
// deterministic; with a provider, a model-assisted refinement is
// attempted and the deterministic table is the fallback. Calibration
// never fails terminally.
type Calibrator struct {
	provider llm.Provider // nil disables the model-assisted pass
}

// New creates a Calibrator. provider may be nil.
func New(provider llm.Provider) *Calibrator {
	return &Calibrator{provider: provider}
}

// Calibrate returns generation bounds for the request. Deterministic for
// a fixed persona and request when no provider is configured.
func (c *Calibrator) Calibrate(ctx context.Context, persona *item.Persona, req item.Request) Params {
	base := tableParams(req.GradeLevel, req.Difficulty)
	base = adjustForPersona(base, persona, req)

	if c.provider == nil {
		return base
	}

	refined, err := c.refine(ctx, base, persona, req)
	if err != nil {
		base.Confidence = confidenceFallback
		return base
	}
	refined.Confidence = confidenceAssisted
	return refined
}

// tableParams is the deterministic grade×difficulty lookup.
func tableParams(grade int, diff item.Difficulty) Params {
	p := Params{
		MaxOperands:    2,
		MaxDenominator: 12,
		Confidence:     confidenceTable,
	}

	switch {
	case grade <= 2:
		p.MinOperand, p.MaxOperand = 0, 20
		p.ComplexityCap = 2
	case grade <= 5:
		p.MinOperand, p.MaxOperand = 0, 1000
		p.ComplexityCap = 3
		p.AllowFractions = grade >= 4
	case grade <= 8:
		p.MinOperand, p.MaxOperand = -1000, 10000
		p.ComplexityCap = 4
		p.AllowNegative = true
		p.AllowFractions = true
	default:
		p.MinOperand, p.MaxOperand = -100000, 100000
		p.ComplexityCap = 5
		p.AllowNegative = true
		p.AllowFractions = true
		p.MaxDenominator = 24
	}

	switch diff {
	case item.DifficultyEasy:
		p.MaxOperand /= 2
		if p.ComplexityCap > 1 {
			p.ComplexityCap--
		}
	case item.DifficultyHard:
		p.MaxOperands = 3
		if p.ComplexityCap < 5 {
			p.ComplexityCap++
		}
	}

	return p
}

// adjustForPersona nudges the table bounds from the learner profile.
// Purely deterministic: a strength matching the topic raises the
// complexity ceiling by one.
func adjustForPersona(p Params, persona *item.Persona, req item.Request) Params {
	if persona == nil {
		return p
	}
	for _, s := range persona.Strengths {
		if s == req.Topic && p.ComplexityCap < 5 {
			p.ComplexityCap++
			break
		}
	}
	return p
}
