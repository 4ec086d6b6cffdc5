// Package metrics collects per-item pipeline measurements. Recording
// is cheap and concurrent; aggregation happens once after the batch
// settles.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// ItemMetrics measures one pipeline run for one item slot.
type ItemMetrics struct {
	// StageTimingsMs maps stage name to total milliseconds spent in
	// that stage across all attempts.
	StageTimingsMs map[string]int64

	RetriesUsed  int
	FallbackUsed bool

	// Confidence is the validation confidence of the delivered item.
	Confidence float64
}

// BatchSummary aggregates a settled batch.
type BatchSummary struct {
	Items         int
	Fallbacks     int
	TotalRetries  int
	AvgConfidence float64

	// StageTotalsMs sums each stage's time across all items.
	StageTotalsMs map[string]int64

	WallTime time.Duration
}

// Collector gathers ItemMetrics from concurrent pipelines.
type Collector struct {
	mu      sync.Mutex
	started time.Time
	items   []ItemMetrics
}

func NewCollector() *Collector {
	return &Collector{started: time.Now()}
}

// Record stores one item's metrics. Safe for concurrent use.
func (c *Collector) Record(m ItemMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, m)
}

// Summary aggregates everything recorded so far.
func (c *Collector) Summary() BatchSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := BatchSummary{
		Items:         len(c.items),
		StageTotalsMs: make(map[string]int64),
		WallTime:      time.Since(c.started),
	}
	var confSum float64
	for _, m := range c.items {
		if m.FallbackUsed {
			s.Fallbacks++
		}
		s.TotalRetries += m.RetriesUsed
		confSum += m.Confidence
		for stage, ms := range m.StageTimingsMs {
			s.StageTotalsMs[stage] += ms
		}
	}
	if len(c.items) > 0 {
		s.AvgConfidence = confSum / float64(len(c.items))
	}
	return s
}

// StageNames returns the recorded stage names in sorted order, for
// stable reporting.
func (s BatchSummary) StageNames() []string {
	names := make([]string, 0, len(s.StageTotalsMs))
	for name := range s.StageTotalsMs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Timer measures one stage execution.
type Timer struct {
	start time.Time
}

func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// ElapsedMs returns whole milliseconds since the timer started, never
// less than zero.
func (t Timer) ElapsedMs() int64 {
	ms := time.Since(t.start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
