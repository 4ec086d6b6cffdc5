package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSearcher struct {
	results []Exemplar
	err     error
	delay   time.Duration
}

func (s *stubSearcher) Search(ctx context.Context, query string, f Filters, k int) ([]Exemplar, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func TestRetrieve_ReturnsResults(t *testing.T) {
	r := New(&stubSearcher{results: []Exemplar{
		{Text: "What is 12 * 12?", Answer: "144", Score: 0.8},
	}}, DefaultConfig())

	got := r.Retrieve(context.Background(), "multiplication grade 5", Filters{Topic: "multiplication", GradeLevel: 5})
	if len(got) != 1 {
		t.Fatalf("expected 1 exemplar, got %d", len(got))
	}
	if got[0].Answer != "144" {
		t.Errorf("unexpected answer %q", got[0].Answer)
	}
}

func TestRetrieve_ErrorYieldsEmpty(t *testing.T) {
	r := New(&stubSearcher{err: errors.New("store down")}, DefaultConfig())
	got := r.Retrieve(context.Background(), "query", Filters{})
	if len(got) != 0 {
		t.Errorf("expected empty result on error, got %d", len(got))
	}
}

func TestRetrieve_TimeoutYieldsEmpty(t *testing.T) {
	r := New(&stubSearcher{delay: 200 * time.Millisecond}, Config{Timeout: 10 * time.Millisecond, TopK: 3})
	start := time.Now()
	got := r.Retrieve(context.Background(), "query", Filters{})
	if len(got) != 0 {
		t.Errorf("expected empty result on timeout, got %d", len(got))
	}
	if time.Since(start) > 150*time.Millisecond {
		t.Error("retrieve did not respect timeout")
	}
}

func TestRetrieve_NilSearcher(t *testing.T) {
	var r *Retriever
	if got := r.Retrieve(context.Background(), "q", Filters{}); got != nil {
		t.Errorf("nil retriever should return nil, got %v", got)
	}
}

func TestOverlapScore(t *testing.T) {
	a := tokenize("What is 12 * 12?")
	b := tokenize("What is 12 * 12?")
	if score := overlapScore(a, b); score != 1.0 {
		t.Errorf("identical texts should score 1.0, got %f", score)
	}

	c := tokenize("Compare the fractions 3/4 and 2/3")
	if score := overlapScore(a, c); score != 0 {
		t.Errorf("disjoint texts should score 0, got %f", score)
	}

	if score := overlapScore(a, map[string]bool{}); score != 0 {
		t.Errorf("empty set should score 0, got %f", score)
	}
}

func TestTokenize_StripsStopwords(t *testing.T) {
	toks := tokenize("What is the answer to 345 + 278?")
	if toks["what"] || toks["is"] || toks["the"] || toks["to"] {
		t.Error("stopwords should be removed")
	}
	if !toks["345"] || !toks["278"] {
		t.Error("numeric tokens should be kept")
	}
}
