package item

import "testing"

func TestCompute_Integers(t *testing.T) {
	tests := []struct {
		name     string
		cat      Category
		operands []string
		want     string
		wantType AnswerType
	}{
		{"addition", CategoryAddition, []string{"345", "278"}, "623", AnswerTypeInteger},
		{"addition three operands", CategoryAddition, []string{"1", "2", "3"}, "6", AnswerTypeInteger},
		{"subtraction", CategorySubtraction, []string{"100", "42"}, "58", AnswerTypeInteger},
		{"subtraction negative result", CategorySubtraction, []string{"5", "9"}, "-4", AnswerTypeInteger},
		{"multiplication", CategoryMultiplication, []string{"12", "12"}, "144", AnswerTypeInteger},
		{"division exact", CategoryDivision, []string{"144", "12"}, "12", AnswerTypeInteger},
		{"comparison", CategoryComparison, []string{"512", "623", "601"}, "623", AnswerTypeInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, at, err := Compute(tt.cat, tt.operands)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("answer: got %q, want %q", got, tt.want)
			}
			if at != tt.wantType {
				t.Errorf("type: got %q, want %q", at, tt.wantType)
			}
		})
	}
}

func TestCompute_Decimals(t *testing.T) {
	got, at, err := Compute(CategoryAddition, []string{"0.5", "0.25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0.75" || at != AnswerTypeDecimal {
		t.Errorf("got %q (%s), want 0.75 (decimal)", got, at)
	}
}

func TestCompute_DecimalSumWhole(t *testing.T) {
	// A whole-valued result collapses to integer form.
	got, at, err := Compute(CategoryAddition, []string{"1.5", "0.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2" || at != AnswerTypeInteger {
		t.Errorf("got %q (%s), want 2 (integer)", got, at)
	}
}

func TestCompute_Fractions(t *testing.T) {
	tests := []struct {
		name     string
		cat      Category
		operands []string
		want     string
		wantType AnswerType
	}{
		{"fraction add", CategoryFractionAddition, []string{"1/4", "1/4"}, "1/2", AnswerTypeFraction},
		{"fraction add mixed denominators", CategoryFractionAddition, []string{"1/2", "1/3"}, "5/6", AnswerTypeFraction},
		{"fraction add whole result", CategoryFractionAddition, []string{"1/2", "1/2"}, "1", AnswerTypeInteger},
		{"fraction subtract", CategoryFractionSubtraction, []string{"3/4", "1/2"}, "1/4", AnswerTypeFraction},
		{"fraction subtract negative", CategoryFractionSubtraction, []string{"1/4", "1/2"}, "-1/4", AnswerTypeFraction},
		{"fraction comparison", CategoryComparison, []string{"3/4", "2/3"}, "3/4", AnswerTypeFraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, at, err := Compute(tt.cat, tt.operands)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("answer: got %q, want %q", got, tt.want)
			}
			if at != tt.wantType {
				t.Errorf("type: got %q, want %q", at, tt.wantType)
			}
		})
	}
}

func TestCompute_NonTerminatingDivision(t *testing.T) {
	// 1/3 does not terminate, so the result stays a fraction.
	got, at, err := Compute(CategoryDivision, []string{"1", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1/3" || at != AnswerTypeFraction {
		t.Errorf("got %q (%s), want 1/3 (fraction)", got, at)
	}
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cat      Category
		operands []string
	}{
		{"too few operands", CategoryAddition, []string{"5"}},
		{"division by zero", CategoryDivision, []string{"10", "0"}},
		{"bad operand", CategoryAddition, []string{"5", "banana"}},
		{"zero denominator operand", CategoryFractionAddition, []string{"1/0", "1/2"}},
		{"unsupported category", Category("calculus"), []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Compute(tt.cat, tt.operands); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCompute_RejectsOversizedOperands(t *testing.T) {
	tests := []struct {
		name     string
		cat      Category
		operands []string
	}{
		{"huge multiplication", CategoryMultiplication, []string{"4000000000", "4000000000"}},
		{"huge addition", CategoryAddition, []string{"9223372036854775807", "1"}},
		{"huge fraction denominator", CategoryFractionAddition, []string{"1/2000000000", "1/3"}},
		{"huge comparison operand", CategoryComparison, []string{"5", "99999999999"}},
		{"overlong decimal", CategoryAddition, []string{"0.1234567891", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := Compute(tt.cat, tt.operands)
			if err == nil {
				t.Fatalf("expected error, got answer %q", got)
			}
		})
	}
}

func TestCompute_RejectsOverflowingIntermediates(t *testing.T) {
	// Each operand is within bounds, but the running product is not.
	ops := []string{"1000000000", "1000000000", "1000000000"}
	got, _, err := Compute(CategoryMultiplication, ops)
	if err == nil {
		t.Fatalf("expected error, got answer %q", got)
	}
}

func TestCompute_LargeInBoundsProduct(t *testing.T) {
	got, at, err := Compute(CategoryMultiplication, []string{"1000000000", "1000000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1000000000000000000" || at != AnswerTypeInteger {
		t.Errorf("got %q (%s), want 1000000000000000000 (integer)", got, at)
	}
}
