package generate

import (
	"testing"

	"github.com/quizforge/quizforge/internal/item"
)

func TestArithmeticDistractorsFillFromDerived(t *testing.T) {
	it := &item.Item{
		Category:   item.CategoryAddition,
		Operands:   []string{"7", "5"},
		Answer:     "12",
		AnswerType: item.AnswerTypeInteger,
	}
	choices, err := ArithmeticDistractors{}.Choices(it, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(choices) != 4 {
		t.Fatalf("got %d choices, want 4", len(choices))
	}
	seen := map[string]int{}
	for _, c := range choices {
		seen[c]++
	}
	if seen["12"] != 1 {
		t.Errorf("choices %v must contain the answer exactly once", choices)
	}
	for c, n := range seen {
		if n > 1 {
			t.Errorf("choice %q repeats", c)
		}
	}
}

func TestArithmeticDistractorsRejectPlaceholders(t *testing.T) {
	it := &item.Item{
		Category:   item.CategorySubtraction,
		Operands:   []string{"20", "8"},
		Answer:     "12",
		AnswerType: item.AnswerTypeInteger,
	}
	choices, err := ArithmeticDistractors{}.Choices(it, []string{"null", "N/A", "12", "13"})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range choices {
		if item.IsPlaceholderAnswer(c) {
			t.Errorf("placeholder %q leaked into choices %v", c, choices)
		}
	}
}

func TestArithmeticDistractorsFractions(t *testing.T) {
	it := &item.Item{
		Category:   item.CategoryFractionAddition,
		Operands:   []string{"1/3", "1/4"},
		Answer:     "7/12",
		AnswerType: item.AnswerTypeFraction,
	}
	choices, err := ArithmeticDistractors{}.Choices(it, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(choices) != 4 {
		t.Fatalf("got %d choices, want 4: %v", len(choices), choices)
	}
}

func TestArithmeticDistractorsEquivalentSuggestionsCollapse(t *testing.T) {
	it := &item.Item{
		Category:   item.CategoryDivision,
		Operands:   []string{"6", "4"},
		Answer:     "1.5",
		AnswerType: item.AnswerTypeDecimal,
	}
	choices, err := ArithmeticDistractors{}.Choices(it, []string{"1.50", "2", "3", "0.5"})
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, c := range choices {
		if item.AnswersEqual(c, "1.5", item.AnswerTypeDecimal) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("choices %v hold %d renderings of the answer, want 1", choices, count)
	}
}
