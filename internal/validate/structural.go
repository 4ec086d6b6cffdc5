package validate

import (
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/item"
)

const mcChoiceCount = 4

var knownCategories = map[item.Category]bool{
	item.CategoryAddition:            true,
	item.CategorySubtraction:         true,
	item.CategoryMultiplication:      true,
	item.CategoryDivision:            true,
	item.CategoryFractionAddition:    true,
	item.CategoryFractionSubtraction: true,
	item.CategoryComparison:          true,
}

// checkStructural verifies the candidate is well-formed before any
// semantic checks run. The answer checks come first: an item with a
// missing or placeholder answer is never usable regardless of what
// else passed.
func (v *Validator) checkStructural(it *item.Item) []Issue {
	var issues []Issue

	if it.Answer == "" {
		issues = append(issues, Issue{Code: IssueMissingAnswer, Detail: "answer is empty"})
	} else if item.IsPlaceholderAnswer(it.Answer) {
		issues = append(issues, Issue{Code: IssuePlaceholderAnswer, Detail: fmt.Sprintf("answer %q is a placeholder", it.Answer)})
	}

	if !knownCategories[it.Category] {
		issues = append(issues, Issue{Code: IssueUnknownCategory, Detail: fmt.Sprintf("category %q", it.Category)})
	}
	if len(it.Operands) < 2 {
		issues = append(issues, Issue{Code: IssueBadOperands, Detail: fmt.Sprintf("need at least 2 operands, got %d", len(it.Operands))})
	}
	for _, op := range it.Operands {
		if op == "" {
			issues = append(issues, Issue{Code: IssueBadOperands, Detail: "empty operand"})
			break
		}
	}

	if it.Answer != "" && !item.IsPlaceholderAnswer(it.Answer) {
		if code := checkAnswerType(it.Answer, it.AnswerType); code != "" {
			issues = append(issues, Issue{Code: code, Detail: fmt.Sprintf("answer %q does not match declared type %q", it.Answer, it.AnswerType)})
		}
	}

	if it.Text == "" {
		issues = append(issues, Issue{Code: IssueTextMissing, Detail: "question text is empty"})
	} else if len(it.Text) > v.cfg.MaxTextLen {
		issues = append(issues, Issue{Code: IssueTextTooLong, Detail: fmt.Sprintf("question text %d chars exceeds %d", len(it.Text), v.cfg.MaxTextLen)})
	}
	if it.Explanation == "" {
		issues = append(issues, Issue{Code: IssueExplanationMissing, Detail: "explanation is empty"})
	} else if len(it.Explanation) > v.cfg.MaxExplanationLen {
		issues = append(issues, Issue{Code: IssueExplanationTooLong, Detail: fmt.Sprintf("explanation %d chars exceeds %d", len(it.Explanation), v.cfg.MaxExplanationLen)})
	}

	switch it.Format {
	case item.FormatNumeric:
		if len(it.Choices) > 0 {
			issues = append(issues, Issue{Code: IssueChoicesOnNumeric, Detail: "numeric items carry no choices"})
		}
	case item.FormatMultipleChoice:
		issues = append(issues, checkChoices(it)...)
	default:
		issues = append(issues, Issue{Code: IssueBadFormat, Detail: fmt.Sprintf("format %q", it.Format)})
	}

	return issues
}

func checkChoices(it *item.Item) []Issue {
	var issues []Issue
	if len(it.Choices) != mcChoiceCount {
		issues = append(issues, Issue{Code: IssueChoiceCount, Detail: fmt.Sprintf("need %d choices, got %d", mcChoiceCount, len(it.Choices))})
	}
	seen := make(map[string]bool, len(it.Choices))
	answerPresent := false
	for _, c := range it.Choices {
		key := choiceKey(c, it.AnswerType)
		if seen[key] {
			issues = append(issues, Issue{Code: IssueDuplicateChoice, Detail: fmt.Sprintf("choice %q repeats", c)})
		}
		seen[key] = true
		if item.AnswersEqual(c, it.Answer, it.AnswerType) {
			answerPresent = true
		}
	}
	if !answerPresent {
		issues = append(issues, Issue{Code: IssueAnswerNotInChoices, Detail: "correct answer missing from choices"})
	}
	return issues
}

// choiceKey canonicalizes a choice so equivalent renderings of the
// same value count as duplicates.
func choiceKey(c string, at item.AnswerType) string {
	if norm, err := item.NormalizeAnswer(c, at); err == nil {
		return norm
	}
	return strings.ToLower(strings.TrimSpace(c))
}

// checkAnswerType confirms the rendered answer parses as its declared
// type. Text answers are accepted as-is for comparison items.
func checkAnswerType(answer string, typ item.AnswerType) IssueCode {
	switch typ {
	case item.AnswerTypeInteger:
		if !isInteger(answer) {
			return IssueAnswerTypeMismatch
		}
	case item.AnswerTypeDecimal:
		if !isDecimal(answer) {
			return IssueAnswerTypeMismatch
		}
	case item.AnswerTypeFraction:
		if _, _, err := item.ParseFraction(answer); err != nil {
			return IssueAnswerTypeMismatch
		}
	case item.AnswerTypeText:
		// any non-empty string
	default:
		return IssueAnswerTypeMismatch
	}
	return ""
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	digits, dots := 0, 0
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
