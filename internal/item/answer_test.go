package item

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		at      AnswerType
		want    string
		wantErr bool
	}{
		{"integer clean", "623", AnswerTypeInteger, "623", false},
		{"integer leading zeros", "007", AnswerTypeInteger, "7", false},
		{"integer negative", "-15", AnswerTypeInteger, "-15", false},
		{"integer invalid", "abc", AnswerTypeInteger, "", true},
		{"decimal trailing zeros", "3.50", AnswerTypeDecimal, "3.5", false},
		{"decimal clean", "0.75", AnswerTypeDecimal, "0.75", false},
		{"fraction reduced", "3/4", AnswerTypeFraction, "3/4", false},
		{"fraction reducible", "2/4", AnswerTypeFraction, "1/2", false},
		{"fraction negative denominator", "1/-2", AnswerTypeFraction, "-1/2", false},
		{"fraction whole", "4/2", AnswerTypeFraction, "2", false},
		{"fraction zero denominator", "1/0", AnswerTypeFraction, "", true},
		{"text lowercased", "  Paris ", AnswerTypeText, "paris", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAnswer(tt.answer, tt.at)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnswersEqual(t *testing.T) {
	if !AnswersEqual("2/4", "1/2", AnswerTypeFraction) {
		t.Error("equivalent fractions should match")
	}
	if !AnswersEqual("3.50", "3.5", AnswerTypeDecimal) {
		t.Error("trailing zeros should be ignored")
	}
	if AnswersEqual("623", "624", AnswerTypeInteger) {
		t.Error("different integers should not match")
	}
}

func TestCheckAnswer_MultipleChoiceIndex(t *testing.T) {
	it := &Item{
		Format:  FormatMultipleChoice,
		Answer:  "623",
		Choices: []string{"512", "623", "601", "599"},
	}
	if !CheckAnswer("2", it) {
		t.Error("index 2 should match the correct choice")
	}
	if CheckAnswer("1", it) {
		t.Error("index 1 should not match")
	}
	if !CheckAnswer("623", it) {
		t.Error("choice text should match")
	}
}

func TestIsPlaceholderAnswer(t *testing.T) {
	placeholders := []string{"", "null", "N/A", "Option A", " option c ", "undefined", "?"}
	for _, p := range placeholders {
		if !IsPlaceholderAnswer(p) {
			t.Errorf("%q should be a placeholder", p)
		}
	}
	real := []string{"623", "0", "3/4", "-1", "0.5"}
	for _, r := range real {
		if IsPlaceholderAnswer(r) {
			t.Errorf("%q should not be a placeholder", r)
		}
	}
}
