package retrieval

import "strings"

// stopwords are common words excluded from overlap scoring. Question
// scaffolding ("what", "is") would otherwise dominate every score.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "do": true, "does": true,
	"for": true, "from": true, "has": true, "have": true, "how": true,
	"if": true, "in": true, "is": true, "it": true, "many": true,
	"much": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "then": true, "there": true, "these": true, "this": true,
	"to": true, "what": true, "which": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}

// tokenize lowercases text and splits it into stopword-free tokens.
// Digits are kept: operand overlap is a meaningful similarity signal here.
func tokenize(text string) map[string]bool {
	out := make(map[string]bool)
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '/' && r != '.'
	}) {
		if stopwords[field] || field == "" {
			continue
		}
		out[field] = true
	}
	return out
}

// overlapScore returns the Jaccard similarity of two token sets in [0,1].
func overlapScore(a, b map[string]bool) float64 {
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
	return float64(inter) / float64(union)
}
