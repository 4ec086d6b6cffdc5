package calibrate

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/llm"
)

func testRequest() item.Request {
	return item.Request{
		Subject:    "math",
		Topic:      "multiplication",
		GradeLevel: 5,
		Difficulty: item.DifficultyMedium,
		Count:      3,
	}
}

func TestCalibrate_Deterministic(t *testing.T) {
	c := New(nil)
	persona := &item.Persona{Grade: 5, LearningStyle: "visual", Strengths: []string{"addition"}}

	first := c.Calibrate(context.Background(), persona, testRequest())
	for range 5 {
		again := c.Calibrate(context.Background(), persona, testRequest())
		if again != first {
			t.Fatalf("calibration not deterministic: %+v vs %+v", again, first)
		}
	}

	if first.Confidence != confidenceTable {
		t.Errorf("expected table confidence %f, got %f", confidenceTable, first.Confidence)
	}
}

func TestCalibrate_GradeBands(t *testing.T) {
	c := New(nil)

	tests := []struct {
		grade          int
		wantNegatives  bool
		wantFractions  bool
	}{
		{1, false, false},
		{3, false, false},
		{5, false, true},
		{7, true, true},
		{11, true, true},
	}

	for _, tt := range tests {
		req := testRequest()
		req.GradeLevel = tt.grade
		p := c.Calibrate(context.Background(), nil, req)
		if p.AllowNegative != tt.wantNegatives {
			t.Errorf("grade %d: AllowNegative = %v, want %v", tt.grade, p.AllowNegative, tt.wantNegatives)
		}
		if p.AllowFractions != tt.wantFractions {
			t.Errorf("grade %d: AllowFractions = %v, want %v", tt.grade, p.AllowFractions, tt.wantFractions)
		}
		if p.Confidence <= 0 {
			t.Errorf("grade %d: confidence must never be zero", tt.grade)
		}
	}
}

func TestCalibrate_DifficultyOrdering(t *testing.T) {
	c := New(nil)

	easy := testRequest()
	easy.Difficulty = item.DifficultyEasy
	hard := testRequest()
	hard.Difficulty = item.DifficultyHard

	pe := c.Calibrate(context.Background(), nil, easy)
	ph := c.Calibrate(context.Background(), nil, hard)

	if pe.MaxOperand >= ph.MaxOperand {
		t.Errorf("easy max operand %d should be below hard %d", pe.MaxOperand, ph.MaxOperand)
	}
	if pe.ComplexityCap >= ph.ComplexityCap {
		t.Errorf("easy complexity %d should be below hard %d", pe.ComplexityCap, ph.ComplexityCap)
	}
}

func TestCalibrate_PersonaStrengthRaisesCap(t *testing.T) {
	c := New(nil)
	req := testRequest()

	without := c.Calibrate(context.Background(), nil, req)
	with := c.Calibrate(context.Background(), &item.Persona{Strengths: []string{"multiplication"}}, req)

	if with.ComplexityCap != without.ComplexityCap+1 {
		t.Errorf("matching strength should raise cap by 1: %d vs %d", with.ComplexityCap, without.ComplexityCap)
	}
}

func TestCalibrate_AssistedRefinement(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"min_operand": 10, "max_operand": 500, "complexity": 3}`),
	})
	c := New(mock)

	p := c.Calibrate(context.Background(), nil, testRequest())
	if p.MinOperand != 10 || p.MaxOperand != 500 {
		t.Errorf("refinement not applied: [%d, %d]", p.MinOperand, p.MaxOperand)
	}
	if p.Confidence != confidenceAssisted {
		t.Errorf("expected assisted confidence, got %f", p.Confidence)
	}
}

func TestCalibrate_AssistFailureFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	c := New(mock)

	p := c.Calibrate(context.Background(), nil, testRequest())
	base := tableParams(5, item.DifficultyMedium)
	if p.MinOperand != base.MinOperand || p.MaxOperand != base.MaxOperand {
		t.Errorf("fallback should use table bounds")
	}
	if p.Confidence != confidenceFallback {
		t.Errorf("expected fallback confidence %f, got %f", confidenceFallback, p.Confidence)
	}
}

func TestCalibrate_RejectsEscapedRefinement(t *testing.T) {
	// Suggestion far wider than the baseline envelope is discarded.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"min_operand": -1000000, "max_operand": 1000000, "complexity": 3}`),
	})
	c := New(mock)

	p := c.Calibrate(context.Background(), nil, testRequest())
	if p.Confidence != confidenceFallback {
		t.Errorf("out-of-envelope refinement should fall back, got confidence %f", p.Confidence)
	}
}
