// Package validate performs deterministic acceptance checks on
// generated items. Validation never calls a model: correctness is
// recomputed from the structured operands, and every other check is a
// pure function of the candidate and the batch accepted so far.
package validate

import (
	"github.com/quizforge/quizforge/internal/item"
)

// Config bounds the deterministic checks.
type Config struct {
	MaxTextLen        int
	MaxExplanationLen int

	// MinDiversity is the smallest acceptable distance between the
	// candidate and any already-accepted item in the batch.
	MinDiversity float64
}

// DefaultConfig returns the validation bounds used when no overrides
// are configured.
func DefaultConfig() Config {
	return Config{
		MaxTextLen:        400,
		MaxExplanationLen: 1200,
		MinDiversity:      0.25,
	}
}

// Validator runs the full check suite over one candidate.
type Validator struct {
	cfg Config
}

func New(cfg Config) *Validator {
	if cfg.MaxTextLen <= 0 {
		cfg.MaxTextLen = DefaultConfig().MaxTextLen
	}
	if cfg.MaxExplanationLen <= 0 {
		cfg.MaxExplanationLen = DefaultConfig().MaxExplanationLen
	}
	if cfg.MinDiversity <= 0 {
		cfg.MinDiversity = DefaultConfig().MinDiversity
	}
	return &Validator{cfg: cfg}
}

// Confidence weights. Structural and correctness dominate because a
// failure there makes the item unusable, while appropriateness,
// pedagogy, and diversity grade quality.
const (
	weightStructural  = 0.30
	weightCorrectness = 0.30
	weightAppropriate = 0.15
	weightPedagogical = 0.10
	weightDiversity   = 0.15
)

// Validate runs every check and aggregates the outcome. accepted holds
// the items already committed to the same batch; pass nil for a single
// item request.
func (v *Validator) Validate(it *item.Item, accepted []*item.Item) Result {
	var res Result

	structIssues := v.checkStructural(it)
	res.Structural = len(structIssues) == 0
	res.Issues = append(res.Issues, structIssues...)

	// Correctness needs usable operands and a computable category, so
	// only run it when the structural pass left those intact.
	if res.Structural || !hasStructuralBlocker(structIssues) {
		corrIssues := v.checkCorrectness(it)
		res.Correctness = len(corrIssues) == 0
		res.Issues = append(res.Issues, corrIssues...)
	}

	appIssues := v.checkAppropriate(it)
	res.Appropriate = len(appIssues) == 0
	res.Issues = append(res.Issues, appIssues...)

	pedIssues := v.checkPedagogical(it)
	res.Pedagogical = len(pedIssues) == 0
	res.Issues = append(res.Issues, pedIssues...)

	res.Diversity = diversityScore(it, accepted)
	diverseEnough := res.Diversity >= v.cfg.MinDiversity
	if !diverseEnough {
		res.Issues = append(res.Issues, Issue{
			Code:   IssueInsufficientDiversity,
			Detail: "too similar to an item already accepted in this batch",
		})
	}

	res.Pass = res.Structural && res.Correctness && res.Appropriate && res.Pedagogical && diverseEnough
	res.Confidence = confidence(res)
	return res
}

// hasStructuralBlocker reports whether a structural issue prevents the
// correctness check from even running.
func hasStructuralBlocker(issues []Issue) bool {
	for _, iss := range issues {
		switch iss.Code {
		case IssueUnknownCategory, IssueBadOperands, IssueMissingAnswer, IssuePlaceholderAnswer:
			return true
		}
	}
	return false
}

func confidence(r Result) float64 {
	c := 0.0
	if r.Structural {
		c += weightStructural
	}
	if r.Correctness {
		c += weightCorrectness
	}
	if r.Appropriate {
		c += weightAppropriate
	}
	if r.Pedagogical {
		c += weightPedagogical
	}
	c += weightDiversity * r.Diversity
	return c
}
