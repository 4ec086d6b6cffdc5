package generate

import (
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/item"
)

func systemPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("You write math practice questions for schoolchildren. ")
	b.WriteString("Produce exactly one question matching the requested category, grade level, and difficulty. ")
	b.WriteString("The operands array must hold the exact numbers used in the question text, in order. ")
	b.WriteString("Do not state an answer anywhere except inside the explanation. ")
	b.WriteString("Write a word problem with a short real-world scenario unless the category is comparison, ")
	b.WriteString("in which case ask which quantity is larger.")
	if p := in.Request.Persona; p != nil {
		if len(p.Interests) > 0 {
			fmt.Fprintf(&b, " Themes the student enjoys: %s.", strings.Join(p.Interests, ", "))
		}
		if p.CulturalContext != "" {
			fmt.Fprintf(&b, " Cultural context: %s.", p.CulturalContext)
		}
	}
	return b.String()
}

func userPrompt(in Input) string {
	var b strings.Builder
	cat, _ := item.CategoryFromTopic(in.Request.Topic)
	fmt.Fprintf(&b, "Category: %s\nGrade level: %d\nDifficulty: %s\n", cat, in.Request.GradeLevel, in.Request.Difficulty)

	p := in.Calibration
	fmt.Fprintf(&b, "Operand range: %d to %d\n", p.MinOperand, p.MaxOperand)
	fmt.Fprintf(&b, "Number of operands: at most %d\n", p.MaxOperands)
	if !p.AllowNegative {
		b.WriteString("The result must not be negative.\n")
	}
	if p.AllowFractions {
		fmt.Fprintf(&b, "Fractions are allowed with denominators up to %d.\n", p.MaxDenominator)
	} else {
		b.WriteString("Do not use fractions.\n")
	}
	if in.Request.Format == item.FormatMultipleChoice {
		b.WriteString("Include four answer choices: the correct answer and three plausible distractors.\n")
	}

	if len(in.Exemplars) > 0 {
		b.WriteString("\nExamples of the expected style:\n")
		for _, ex := range in.Exemplars {
			fmt.Fprintf(&b, "- %s\n", ex.Text)
		}
		b.WriteString("Write a new question. Do not reuse the numbers or the scenario of any example.\n")
	}

	if len(in.Feedback) > 0 {
		b.WriteString("\nYour previous attempt was rejected. Fix these problems:\n")
		for _, iss := range in.Feedback {
			fmt.Fprintf(&b, "- %s: %s\n", iss.Code, iss.Detail)
		}
	}

	return b.String()
}
