package orchestrator

import (
	"sync"

	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/validate"
)

// batchLedger holds the items accepted so far in one batch. Concurrent
// pipelines validate against a snapshot and then commit under the
// lock, where the diversity check runs once more against any items
// that landed in between. That keeps two near-identical candidates
// from slipping past each other's snapshots.
type batchLedger struct {
	mu       sync.Mutex
	accepted []*item.Item
}

func newBatchLedger() *batchLedger {
	return &batchLedger{}
}

func (l *batchLedger) snapshot() []*item.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*item.Item, len(l.accepted))
	copy(out, l.accepted)
	return out
}

// tryCommit revalidates the candidate against the current accepted set
// and appends it when it still passes. Returns the authoritative
// validation result either way.
func (l *batchLedger) tryCommit(v *validate.Validator, it *item.Item) (bool, validate.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := v.Validate(it, l.accepted)
	if !res.Pass {
		return false, res
	}
	l.accepted = append(l.accepted, it)
	return true, res
}

// commitFallback records a fallback item so later candidates keep
// their distance from it too.
func (l *batchLedger) commitFallback(it *item.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accepted = append(l.accepted, it)
}
