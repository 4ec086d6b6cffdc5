package item

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// maxOperandMagnitude bounds every parsed numerator and denominator.
// With operands capped at 1e9, any single cross product stays within
// int64, and the checked arithmetic below catches whatever a chain of
// operations can still accumulate.
const maxOperandMagnitude = int64(1_000_000_000)

var errValueRange = errors.New("value exceeds the supported range")

// Compute derives the correct answer for a category and operand list.
// This is the single authoritative answer derivation in the system: the
// validator recomputes through it and fallback templates are built
// through it. It never inspects rendered text.
//
// Operands are numeric literals ("345", "-12", "0.5", "3/4"). Arithmetic
// is exact: every operand is held as a rational, and the result is
// rendered as an integer, a terminating decimal, or a reduced fraction.
// Operands or intermediate values outside the supported magnitude are
// rejected rather than allowed to wrap.
func Compute(cat Category, operands []string) (string, AnswerType, error) {
	if len(operands) < 2 {
		return "", "", fmt.Errorf("category %q needs at least 2 operands, got %d", cat, len(operands))
	}

	rats := make([]rational, len(operands))
	for i, op := range operands {
		r, err := parseRational(op)
		if err != nil {
			return "", "", fmt.Errorf("operand %d: %w", i+1, err)
		}
		rats[i] = r
	}

	switch cat {
	case CategoryAddition, CategoryFractionAddition:
		acc := rats[0]
		for _, r := range rats[1:] {
			var err error
			if acc, err = acc.add(r); err != nil {
				return "", "", err
			}
		}
		return renderRational(acc, cat, operands)

	case CategorySubtraction, CategoryFractionSubtraction:
		acc := rats[0]
		for _, r := range rats[1:] {
			var err error
			if acc, err = acc.add(r.neg()); err != nil {
				return "", "", err
			}
		}
		return renderRational(acc, cat, operands)

	case CategoryMultiplication:
		acc := rats[0]
		for _, r := range rats[1:] {
			var err error
			if acc, err = acc.mul(r); err != nil {
				return "", "", err
			}
		}
		return renderRational(acc, cat, operands)

	case CategoryDivision:
		acc := rats[0]
		for _, r := range rats[1:] {
			if r.num == 0 {
				return "", "", fmt.Errorf("division by zero")
			}
			var err error
			if acc, err = acc.mul(rational{num: r.den, den: r.num}.normalize()); err != nil {
				return "", "", err
			}
		}
		return renderRational(acc, cat, operands)

	case CategoryComparison:
		best := 0
		for i := 1; i < len(rats); i++ {
			if rats[i].cmp(rats[best]) > 0 {
				best = i
			}
		}
		at := literalType(operands[best])
		norm, err := NormalizeAnswer(operands[best], at)
		if err != nil {
			return "", "", err
		}
		return norm, at, nil

	default:
		return "", "", fmt.Errorf("unsupported category: %q", cat)
	}
}

// literalType classifies a numeric literal by shape.
func literalType(s string) AnswerType {
	if strings.Contains(s, "/") {
		return AnswerTypeFraction
	}
	if strings.Contains(s, ".") {
		return AnswerTypeDecimal
	}
	return AnswerTypeInteger
}

// renderRational formats a computed rational as the narrowest answer type:
// integer when whole, decimal when the operands were decimal and the value
// terminates, reduced fraction otherwise.
func renderRational(r rational, cat Category, operands []string) (string, AnswerType, error) {
	r = r.normalize()

	if r.den == 1 {
		return strconv.FormatInt(r.num, 10), AnswerTypeInteger, nil
	}

	fractional := cat == CategoryFractionAddition || cat == CategoryFractionSubtraction
	for _, op := range operands {
		if literalType(op) == AnswerTypeFraction {
			fractional = true
		}
	}

	if !fractional && terminates(r.den) {
		dec, err := renderDecimal(r)
		if err != nil {
			return "", "", err
		}
		return dec, AnswerTypeDecimal, nil
	}

	return fmt.Sprintf("%d/%d", r.num, r.den), AnswerTypeFraction, nil
}

// renderDecimal formats a normalized rational with a terminating
// expansion exactly, without a float64 round trip. The denominator is
// 2^a * 5^b, so scaling the numerator by 10^max(a,b)/den yields an
// integer whose digits are the decimal expansion.
func renderDecimal(r rational) (string, error) {
	twos, fives := 0, 0
	den := r.den
	for den%2 == 0 {
		den /= 2
		twos++
	}
	for den%5 == 0 {
		den /= 5
		fives++
	}
	places := max(twos, fives)

	scale := int64(1)
	for range places {
		var err error
		if scale, err = mul64(scale, 10); err != nil {
			return "", err
		}
	}
	scaled, err := mul64(r.num, scale/r.den)
	if err != nil {
		return "", err
	}

	digits := strconv.FormatInt(abs(scaled), 10)
	for len(digits) <= places {
		digits = "0" + digits
	}
	out := digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	if scaled < 0 {
		out = "-" + out
	}
	return out, nil
}

// terminates reports whether num/den has a terminating decimal expansion,
// i.e. den has no prime factors other than 2 and 5.
func terminates(den int64) bool {
	for den%2 == 0 {
		den /= 2
	}
	for den%5 == 0 {
		den /= 5
	}
	return den == 1
}

// rational is an exact numerator/denominator pair. den is kept positive.
type rational struct {
	num, den int64
}

func (r rational) normalize() rational {
	if r.den < 0 {
		r.num = -r.num
		r.den = -r.den
	}
	g := gcd(abs(r.num), r.den)
	return rational{num: r.num / g, den: r.den / g}
}

func (r rational) neg() rational { return rational{num: -r.num, den: r.den} }

func (r rational) add(o rational) (rational, error) {
	ad, err := mul64(r.num, o.den)
	if err != nil {
		return rational{}, err
	}
	bc, err := mul64(o.num, r.den)
	if err != nil {
		return rational{}, err
	}
	num, err := add64(ad, bc)
	if err != nil {
		return rational{}, err
	}
	den, err := mul64(r.den, o.den)
	if err != nil {
		return rational{}, err
	}
	return rational{num: num, den: den}.normalize(), nil
}

func (r rational) mul(o rational) (rational, error) {
	num, err := mul64(r.num, o.num)
	if err != nil {
		return rational{}, err
	}
	den, err := mul64(r.den, o.den)
	if err != nil {
		return rational{}, err
	}
	return rational{num: num, den: den}.normalize(), nil
}

// cmp returns -1, 0, or 1 comparing r against o. Safe without overflow
// checks because parseRational bounds both sides at maxOperandMagnitude,
// keeping the cross products within int64.
func (r rational) cmp(o rational) int {
	lhs := r.num * o.den
	rhs := o.num * r.den
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// mul64 multiplies with overflow detection.
func mul64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/a != b {
		return 0, errValueRange
	}
	return c, nil
}

// add64 adds with overflow detection.
func add64(a, b int64) (int64, error) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, errValueRange
	}
	return c, nil
}

// parseRational parses an integer, decimal, or fraction literal and
// rejects magnitudes beyond maxOperandMagnitude.
func parseRational(s string) (rational, error) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "/") {
		num, den, err := ParseFraction(s)
		if err != nil {
			return rational{}, err
		}
		if den == 0 {
			return rational{}, fmt.Errorf("zero denominator in %q", s)
		}
		return boundedRational(rational{num: num, den: den}, s)
	}

	if dot := strings.Index(s, "."); dot >= 0 {
		whole := s[:dot]
		frac := s[dot+1:]
		if frac == "" {
			return rational{}, fmt.Errorf("invalid decimal: %q", s)
		}
		if len(frac) > 9 {
			return rational{}, fmt.Errorf("operand %q: %w", s, errValueRange)
		}
		combined := whole + frac
		n, err := strconv.ParseInt(combined, 10, 64)
		if err != nil {
			return rational{}, fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		den := int64(1)
		for range len(frac) {
			den *= 10
		}
		return boundedRational(rational{num: n, den: den}, s)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return rational{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return boundedRational(rational{num: n, den: 1}, s)
}

func boundedRational(r rational, literal string) (rational, error) {
	r = r.normalize()
	if abs(r.num) > maxOperandMagnitude || r.den > maxOperandMagnitude {
		return rational{}, fmt.Errorf("operand %q: %w", literal, errValueRange)
	}
	return r, nil
}
