package validate

import (
	"fmt"

	"github.com/quizforge/quizforge/internal/item"
)

// checkCorrectness recomputes the answer from the structured operands
// and compares it with the candidate's claimed answer. It never reads
// the rendered question text. An item whose operands cannot be
// computed is unverifiable and therefore fails.
func (v *Validator) checkCorrectness(it *item.Item) []Issue {
	expected, expectedType, err := item.Compute(it.Category, it.Operands)
	if err != nil {
		return []Issue{{Code: IssueUncomputable, Detail: err.Error()}}
	}
	// Compare under both the declared and the computed type so an
	// equivalent rendering like "4.0" for a computed "4" still matches.
	match := item.AnswersEqual(it.Answer, expected, expectedType) ||
		item.AnswersEqual(it.Answer, expected, it.AnswerType)
	if !match {
		return []Issue{{
			Code:   IssueCorrectnessMismatch,
			Detail: fmt.Sprintf("claimed %q, computed %q", it.Answer, expected),
		}}
	}
	return nil
}
