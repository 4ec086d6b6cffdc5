package validate

import (
	"testing"

	"github.com/quizforge/quizforge/internal/item"
)

func validItem() *item.Item {
	return &item.Item{
		ID:          "test-1",
		Category:    item.CategoryAddition,
		Operands:    []string{"7", "5"},
		Answer:      "12",
		AnswerType:  item.AnswerTypeInteger,
		Format:      item.FormatNumeric,
		Text:        "Maya has 7 apples and picks 5 more. How many apples does she have now?",
		Explanation: "Add the two amounts together: 7 plus 5 equals 12.",
		GradeLevel:  3,
		Difficulty:  item.DifficultyEasy,
	}
}

func hasCode(issues []Issue, code IssueCode) bool {
	for _, iss := range issues {
		if iss.Code == code {
			return true
		}
	}
	return false
}

func TestValidateAccepts(t *testing.T) {
	v := New(DefaultConfig())
	res := v.Validate(validItem(), nil)
	if !res.Pass {
		t.Fatalf("expected pass, got issues %v", res.Issues)
	}
	if !res.Structural || !res.Correctness || !res.Appropriate || !res.Pedagogical {
		t.Errorf("check flags = %v %v %v %v", res.Structural, res.Correctness, res.Appropriate, res.Pedagogical)
	}
	if res.Diversity != 1 {
		t.Errorf("diversity with empty batch = %v, want 1", res.Diversity)
	}
	if res.Confidence < 0.999 {
		t.Errorf("confidence = %v, want ~1", res.Confidence)
	}
}

func TestValidateMissingAnswer(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Answer = ""
	res := v.Validate(it, nil)
	if res.Pass {
		t.Fatal("expected failure")
	}
	if !hasCode(res.Issues, IssueMissingAnswer) {
		t.Errorf("issues = %v, want missing_answer", res.Codes())
	}
	if res.Correctness {
		t.Error("correctness should not pass when answer is missing")
	}
}

func TestValidatePlaceholderAnswer(t *testing.T) {
	v := New(DefaultConfig())
	for _, ans := range []string{"null", "N/A", "Option A", "?"} {
		it := validItem()
		it.Answer = ans
		res := v.Validate(it, nil)
		if res.Pass {
			t.Errorf("answer %q: expected failure", ans)
		}
		if !hasCode(res.Issues, IssuePlaceholderAnswer) {
			t.Errorf("answer %q: issues = %v, want placeholder_answer", ans, res.Codes())
		}
	}
}

func TestValidateWrongAnswer(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Answer = "13"
	it.Explanation = "Add the two amounts together: 7 plus 5 equals 13."
	res := v.Validate(it, nil)
	if res.Pass {
		t.Fatal("expected failure")
	}
	if !hasCode(res.Issues, IssueCorrectnessMismatch) {
		t.Errorf("issues = %v, want correctness_mismatch", res.Codes())
	}
}

func TestValidateEquivalentAnswerForms(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Operands = []string{"1.5", "2.5"}
	it.Answer = "4.0"
	it.AnswerType = item.AnswerTypeDecimal
	it.Text = "What is 1.5 plus 2.5?"
	it.Explanation = "Adding 1.5 and 2.5 gives 4.0."
	res := v.Validate(it, nil)
	if !res.Correctness {
		t.Errorf("4.0 should match computed 4, issues %v", res.Codes())
	}
}

func TestValidateUncomputableOperands(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Operands = []string{"seven", "5"}
	res := v.Validate(it, nil)
	if res.Pass {
		t.Fatal("expected failure")
	}
	if !hasCode(res.Issues, IssueUncomputable) {
		t.Errorf("issues = %v, want uncomputable_operands", res.Codes())
	}
}

func TestValidateAnswerTypeMismatch(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.AnswerType = item.AnswerTypeFraction
	res := v.Validate(it, nil)
	if !hasCode(res.Issues, IssueAnswerTypeMismatch) {
		t.Errorf("issues = %v, want answer_type_mismatch", res.Codes())
	}
}

func TestValidateMultipleChoice(t *testing.T) {
	v := New(DefaultConfig())

	it := validItem()
	it.Format = item.FormatMultipleChoice
	it.Choices = []string{"10", "11", "12", "13"}
	res := v.Validate(it, nil)
	if !res.Pass {
		t.Fatalf("expected pass, got %v", res.Codes())
	}

	it.Choices = []string{"10", "11", "13", "14"}
	res = v.Validate(it, nil)
	if !hasCode(res.Issues, IssueAnswerNotInChoices) {
		t.Errorf("issues = %v, want answer_not_in_choices", res.Codes())
	}

	it.Choices = []string{"10", "10", "12", "13"}
	res = v.Validate(it, nil)
	if !hasCode(res.Issues, IssueDuplicateChoice) {
		t.Errorf("issues = %v, want duplicate_choice", res.Codes())
	}

	it.Choices = []string{"11", "12", "13"}
	res = v.Validate(it, nil)
	if !hasCode(res.Issues, IssueChoiceCount) {
		t.Errorf("issues = %v, want choice_count", res.Codes())
	}
}

func TestValidateChoicesOnNumeric(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Choices = []string{"11", "12"}
	res := v.Validate(it, nil)
	if !hasCode(res.Issues, IssueChoicesOnNumeric) {
		t.Errorf("issues = %v, want choices_on_numeric", res.Codes())
	}
}

func TestValidateNegativeBelowGrade(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Category = item.CategorySubtraction
	it.Operands = []string{"3", "8"}
	it.Answer = "-5"
	it.Text = "What is 3 minus 8?"
	it.Explanation = "Subtracting 8 from 3 gives -5."
	it.GradeLevel = 3
	res := v.Validate(it, nil)
	if res.Pass {
		t.Fatal("expected failure at grade 3")
	}
	if !hasCode(res.Issues, IssueNegativeBelowGrade) {
		t.Errorf("issues = %v, want negative_below_grade", res.Codes())
	}

	it.GradeLevel = 7
	res = v.Validate(it, nil)
	if !res.Pass {
		t.Errorf("grade 7 should accept negatives, got %v", res.Codes())
	}
}

func TestValidateFractionBounds(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Category = item.CategoryFractionAddition
	it.Operands = []string{"1/3", "1/4"}
	it.Answer = "7/12"
	it.AnswerType = item.AnswerTypeFraction
	it.Text = "What is 1/3 plus 1/4?"
	it.Explanation = "Using a common denominator of 12, 1/3 plus 1/4 equals 7/12."
	it.GradeLevel = 5
	res := v.Validate(it, nil)
	if !res.Pass {
		t.Fatalf("expected pass at grade 5, got %v", res.Codes())
	}

	it.GradeLevel = 2
	res = v.Validate(it, nil)
	if !hasCode(res.Issues, IssueFractionTooComplex) {
		t.Errorf("grade 2 issues = %v, want fraction_too_complex", res.Codes())
	}

	it.GradeLevel = 5
	it.Operands = []string{"1/13", "1/17"}
	it.Answer = "30/221"
	it.Explanation = "Using a common denominator, 1/13 plus 1/17 equals 30/221."
	res = v.Validate(it, nil)
	if !hasCode(res.Issues, IssueFractionTooComplex) {
		t.Errorf("denominator 221 issues = %v, want fraction_too_complex", res.Codes())
	}
}

func TestValidateWeakExplanation(t *testing.T) {
	v := New(DefaultConfig())
	it := validItem()
	it.Explanation = "Just count carefully and you will get it."
	res := v.Validate(it, nil)
	if res.Pass {
		t.Fatal("expected failure")
	}
	if !hasCode(res.Issues, IssueWeakExplanation) {
		t.Errorf("issues = %v, want weak_explanation", res.Codes())
	}
}

func TestValidateDiversityOperandCollision(t *testing.T) {
	v := New(DefaultConfig())
	prev := validItem()
	cand := validItem()
	cand.ID = "test-2"
	cand.Operands = []string{"5", "7"} // same multiset, reordered
	cand.Text = "A shelf holds 5 red books and 7 blue books. How many books in total?"
	res := v.Validate(cand, []*item.Item{prev})
	if res.Diversity != 0 {
		t.Errorf("diversity = %v, want 0 for operand collision", res.Diversity)
	}
	if !hasCode(res.Issues, IssueInsufficientDiversity) {
		t.Errorf("issues = %v, want insufficient_diversity", res.Codes())
	}
}

func TestValidateDiversityDistinctItems(t *testing.T) {
	v := New(DefaultConfig())
	prev := validItem()
	cand := validItem()
	cand.ID = "test-2"
	cand.Operands = []string{"23", "41"}
	cand.Answer = "64"
	cand.Text = "A train carries 23 passengers and picks up 41 more at the station. How many passengers are aboard?"
	cand.Explanation = "Add the passengers: 23 plus 41 equals 64."
	res := v.Validate(cand, []*item.Item{prev})
	if !res.Pass {
		t.Fatalf("expected pass, got %v (diversity %v)", res.Codes(), res.Diversity)
	}
}

func TestValidateNearDuplicateText(t *testing.T) {
	v := New(DefaultConfig())
	prev := validItem()
	cand := validItem()
	cand.ID = "test-2"
	cand.Operands = []string{"7", "6"}
	cand.Answer = "13"
	cand.Text = "Maya has 7 apples and picks 6 more. How many apples does she have now?"
	cand.Explanation = "Add the two amounts together: 7 plus 6 equals 13."
	res := v.Validate(cand, []*item.Item{prev})
	if res.Diversity >= v.cfg.MinDiversity {
		t.Errorf("near-duplicate text scored %v, want below %v", res.Diversity, v.cfg.MinDiversity)
	}
}

func TestConfidenceDegrades(t *testing.T) {
	v := New(DefaultConfig())
	good := v.Validate(validItem(), nil)
	bad := validItem()
	bad.Answer = "13"
	badRes := v.Validate(bad, nil)
	if badRes.Confidence >= good.Confidence {
		t.Errorf("failing confidence %v should be below passing %v", badRes.Confidence, good.Confidence)
	}
}

func TestValidateRejectsWrappedProduct(t *testing.T) {
	// Operands large enough to wrap int64 must fail as uncomputable
	// rather than certify the wrapped value as correct.
	it := validItem()
	it.Category = item.CategoryMultiplication
	it.Operands = []string{"4000000000", "4000000000"}
	it.Answer = "-2446744073709551616"
	it.Text = "A satellite logs 4000000000 samples on each of 4000000000 passes. How many samples is that?"
	it.Explanation = "Multiply 4000000000 by 4000000000 to get -2446744073709551616."
	it.GradeLevel = 12

	v := New(DefaultConfig())
	res := v.Validate(it, nil)
	if res.Pass {
		t.Fatal("wrapped product passed validation")
	}
	if res.Correctness {
		t.Error("correctness check accepted an uncomputable product")
	}
	if !hasCode(res.Issues, IssueUncomputable) {
		t.Errorf("expected %s issue, got %v", IssueUncomputable, res.Issues)
	}
}
