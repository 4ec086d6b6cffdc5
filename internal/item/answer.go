package item

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckAnswer compares a learner's input against the item's answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Comparison is case-insensitive
// - Equivalent fractions are accepted (e.g. "2/4" matches "1/2")
// - Trailing zeros on decimals are ignored (e.g. "3.50" matches "3.5")
// - Leading zeros on integers are ignored (e.g. "007" matches "7")
// - For multiple choice: matches choice text or 1-based index
func CheckAnswer(learnerAnswer string, it *Item) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" {
		return false
	}

	if it.Format == FormatMultipleChoice {
		if idx, err := strconv.Atoi(learnerAnswer); err == nil && idx >= 1 && idx <= len(it.Choices) {
			return strings.EqualFold(
				strings.TrimSpace(it.Choices[idx-1]),
				strings.TrimSpace(it.Answer),
			)
		}
		return strings.EqualFold(learnerAnswer, strings.TrimSpace(it.Answer))
	}

	return AnswersEqual(learnerAnswer, it.Answer, it.AnswerType)
}

// AnswersEqual compares two answer strings under the normalization rules
// for the given answer type. Falls back to trimmed string comparison when
// either side fails to parse.
func AnswersEqual(a, b string, at AnswerType) bool {
	na, err := NormalizeAnswer(a, at)
	if err != nil {
		return normalizeToken(a) == normalizeToken(b)
	}
	nb, err := NormalizeAnswer(b, at)
	if err != nil {
		return normalizeToken(a) == normalizeToken(b)
	}
	return na == nb
}

// NormalizeAnswer returns the canonical form of an answer string:
// integers without leading zeros, decimals without trailing zeros,
// fractions reduced with the sign on the numerator.
func NormalizeAnswer(answer string, at AnswerType) (string, error) {
	answer = strings.TrimSpace(answer)

	switch at {
	case AnswerTypeInteger:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil

	case AnswerTypeDecimal:
		f, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil

	case AnswerTypeFraction:
		num, den, err := ParseFraction(answer)
		if err != nil {
			return "", err
		}
		if den == 0 {
			return "", fmt.Errorf("zero denominator")
		}
		if den < 0 {
			num = -num
			den = -den
		}
		g := gcd(abs(num), den)
		num /= g
		den /= g
		if den == 1 {
			return strconv.FormatInt(num, 10), nil
		}
		return fmt.Sprintf("%d/%d", num, den), nil

	default:
		return normalizeToken(answer), nil
	}
}

// ParseFraction parses "a/b" into numerator and denominator.
func ParseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}

// normalizeToken lowercases and trims a string for loose comparison.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// gcd returns the greatest common divisor of two non-negative ints.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// abs returns the absolute value of n.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
