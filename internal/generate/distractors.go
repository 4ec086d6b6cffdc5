package generate

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/quizforge/quizforge/internal/item"
)

// DistractorPolicy builds the choice list for a multiple-choice item.
// Implementations must include the correct answer exactly once and
// return no duplicate values.
type DistractorPolicy interface {
	Choices(it *item.Item, suggested []string) ([]string, error)
}

// ArithmeticDistractors derives wrong answers from common student
// errors: off-by-one slips, dropped carries, and swapped operations.
// Model-suggested distractors are used first when they are distinct
// from the answer and from each other; computed ones fill the rest.
type ArithmeticDistractors struct{}

func (ArithmeticDistractors) Choices(it *item.Item, suggested []string) ([]string, error) {
	key := func(c string) string {
		if norm, err := item.NormalizeAnswer(c, it.AnswerType); err == nil {
			return norm
		}
		return strings.ToLower(strings.TrimSpace(c))
	}

	choices := []string{it.Answer}
	seen := map[string]bool{key(it.Answer): true}

	add := func(c string) {
		if len(choices) >= 4 || c == "" || item.IsPlaceholderAnswer(c) {
			return
		}
		k := key(c)
		if seen[k] {
			return
		}
		seen[k] = true
		choices = append(choices, c)
	}

	for _, s := range suggested {
		add(s)
	}
	for _, d := range derivedDistractors(it) {
		add(d)
	}
	if len(choices) < 4 {
		return nil, fmt.Errorf("only %d distinct choices for answer %q", len(choices), it.Answer)
	}

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices, nil
}

// derivedDistractors produces plausible wrong answers from the item's
// structure.
func derivedDistractors(it *item.Item) []string {
	var out []string

	if n, err := strconv.ParseInt(it.Answer, 10, 64); err == nil {
		out = append(out,
			strconv.FormatInt(n+1, 10),
			strconv.FormatInt(n-1, 10),
			strconv.FormatInt(n+10, 10),
			strconv.FormatInt(n-10, 10),
		)
	}

	// the result of applying the sibling operation to the same operands
	if alt, ok := siblingCategory(it.Category); ok {
		if ans, _, err := item.Compute(alt, it.Operands); err == nil {
			out = append(out, ans)
		}
	}

	// operands themselves are classic answer-the-wrong-thing mistakes
	out = append(out, it.Operands...)

	if num, den, err := item.ParseFraction(it.Answer); err == nil && den > 1 {
		out = append(out,
			fmt.Sprintf("%d/%d", num+1, den),
			fmt.Sprintf("%d/%d", num, den+1),
			fmt.Sprintf("%d/%d", den, num),
		)
	}

	return out
}

func siblingCategory(cat item.Category) (item.Category, bool) {
	switch cat {
	case item.CategoryAddition:
		return item.CategorySubtraction, true
	case item.CategorySubtraction:
		return item.CategoryAddition, true
	case item.CategoryMultiplication:
		return item.CategoryDivision, true
	case item.CategoryDivision:
		return item.CategoryMultiplication, true
	case item.CategoryFractionAddition:
		return item.CategoryFractionSubtraction, true
	case item.CategoryFractionSubtraction:
		return item.CategoryFractionAddition, true
	}
	return "", false
}
