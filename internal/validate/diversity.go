package validate

import (
	"sort"
	"strings"
	"unicode"

	"github.com/quizforge/quizforge/internal/item"
)

// diversityScore returns the minimum distance between the candidate
// and any already-accepted item in the batch, in [0,1]. Distance is
// one minus the token overlap of the question texts, forced to zero
// when two items share a category and the same operand multiset
// regardless of how the prose differs. An empty batch scores 1.
func diversityScore(candidate *item.Item, accepted []*item.Item) float64 {
	if len(accepted) == 0 {
		return 1
	}
	candTokens := textTokens(candidate.Text)
	candOps := operandKey(candidate.Category, candidate.Operands)
	min := 1.0
	for _, prev := range accepted {
		var d float64
		if operandKey(prev.Category, prev.Operands) == candOps {
			d = 0
		} else {
			d = 1 - jaccard(candTokens, textTokens(prev.Text))
		}
		if d < min {
			min = d
		}
	}
	return min
}

// operandKey canonicalizes the operand multiset so that reordered
// operands of a commutative problem still collide.
func operandKey(cat item.Category, operands []string) string {
	norm := make([]string, len(operands))
	for i, op := range operands {
		norm[i] = normOperand(op)
	}
	sort.Strings(norm)
	return string(cat) + "|" + strings.Join(norm, ",")
}

// normOperand reduces an operand literal to a canonical numeric form.
func normOperand(op string) string {
	if strings.Contains(op, "/") {
		if norm, err := item.NormalizeAnswer(op, item.AnswerTypeFraction); err == nil {
			return norm
		}
	}
	if norm, err := item.NormalizeAnswer(op, item.AnswerTypeDecimal); err == nil {
		return norm
	}
	return strings.ToLower(strings.TrimSpace(op))
}

func textTokens(text string) map[string]bool {
	tokens := make(map[string]bool)
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens[b.String()] = true
			b.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '/' || r == '.' {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
