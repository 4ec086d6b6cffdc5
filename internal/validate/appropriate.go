package validate

import (
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/item"
)

// Grade bands for appropriateness. Negative quantities and fraction
// answers are introduced at fixed points in the curriculum; an item
// that lands below its band fails rather than being silently clamped,
// so the corrective feedback can steer the next attempt.
const (
	negativeAnswerMinGrade = 6
	fractionAnswerMinGrade = 4
)

func maxDenominatorForGrade(grade int) int {
	switch {
	case grade <= 5:
		return 12
	case grade <= 8:
		return 24
	default:
		return 100
	}
}

func (v *Validator) checkAppropriate(it *item.Item) []Issue {
	var issues []Issue
	grade := it.GradeLevel

	if strings.HasPrefix(strings.TrimSpace(it.Answer), "-") && grade < negativeAnswerMinGrade {
		issues = append(issues, Issue{
			Code:   IssueNegativeBelowGrade,
			Detail: fmt.Sprintf("negative answer %q at grade %d, negatives start at grade %d", it.Answer, grade, negativeAnswerMinGrade),
		})
	}

	if it.AnswerType == item.AnswerTypeFraction {
		if grade < fractionAnswerMinGrade {
			issues = append(issues, Issue{
				Code:   IssueFractionTooComplex,
				Detail: fmt.Sprintf("fraction answer at grade %d, fractions start at grade %d", grade, fractionAnswerMinGrade),
			})
		} else if _, den, err := item.ParseFraction(it.Answer); err == nil {
			if limit := maxDenominatorForGrade(grade); den > int64(limit) {
				issues = append(issues, Issue{
					Code:   IssueFractionTooComplex,
					Detail: fmt.Sprintf("denominator %d exceeds %d for grade %d", den, limit, grade),
				})
			}
		}
	}

	return issues
}

// checkPedagogical applies deterministic quality heuristics to the
// explanation. The explanation has to actually walk through the
// problem, which at minimum means naming the result and at least one
// operand.
func (v *Validator) checkPedagogical(it *item.Item) []Issue {
	if it.Explanation == "" {
		// structural already flagged this
		return nil
	}
	var issues []Issue
	if it.Answer != "" && !strings.Contains(it.Explanation, it.Answer) {
		issues = append(issues, Issue{Code: IssueWeakExplanation, Detail: "explanation never states the answer"})
	}
	mentionsOperand := false
	for _, op := range it.Operands {
		if op != "" && strings.Contains(it.Explanation, op) {
			mentionsOperand = true
			break
		}
	}
	if !mentionsOperand {
		issues = append(issues, Issue{Code: IssueWeakExplanation, Detail: "explanation never references an operand"})
	}
	return issues
}
