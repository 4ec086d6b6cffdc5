package metrics

import (
	"sync"
	"testing"
)

func TestCollectorAggregates(t *testing.T) {
	c := NewCollector()
	c.Record(ItemMetrics{
		StageTimingsMs: map[string]int64{"generate": 120, "validate": 4},
		RetriesUsed:    2,
		Confidence:     0.9,
	})
	c.Record(ItemMetrics{
		StageTimingsMs: map[string]int64{"generate": 80, "validate": 6},
		FallbackUsed:   true,
		RetriesUsed:    3,
		Confidence:     0.6,
	})

	s := c.Summary()
	if s.Items != 2 {
		t.Errorf("Items = %d, want 2", s.Items)
	}
	if s.Fallbacks != 1 {
		t.Errorf("Fallbacks = %d, want 1", s.Fallbacks)
	}
	if s.TotalRetries != 5 {
		t.Errorf("TotalRetries = %d, want 5", s.TotalRetries)
	}
	if s.StageTotalsMs["generate"] != 200 {
		t.Errorf("generate total = %d, want 200", s.StageTotalsMs["generate"])
	}
	if s.AvgConfidence != 0.75 {
		t.Errorf("AvgConfidence = %v, want 0.75", s.AvgConfidence)
	}
	want := []string{"generate", "validate"}
	got := s.StageNames()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("StageNames = %v, want %v", got, want)
	}
}

func TestCollectorConcurrentRecord(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(ItemMetrics{RetriesUsed: 1})
		}()
	}
	wg.Wait()
	if s := c.Summary(); s.Items != 16 || s.TotalRetries != 16 {
		t.Errorf("summary = %+v", s)
	}
}

func TestEmptySummary(t *testing.T) {
	c := NewCollector()
	s := c.Summary()
	if s.Items != 0 || s.AvgConfidence != 0 {
		t.Errorf("summary = %+v", s)
	}
}
