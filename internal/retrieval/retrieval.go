package retrieval

import (
	"context"
	"time"
)

// Retriever fetches grounding exemplars with a bounded timeout.
// Retrieval is advisory: on timeout or any search error it returns an
// empty list so the pipeline proceeds without grounding. Safe for
// concurrent use across item pipelines.
type Retriever struct {
	searcher Searcher
	timeout  time.Duration
	k        int
}

// Config bounds a Retriever.
type Config struct {
	Timeout time.Duration
	TopK    int
}

// DefaultConfig returns the standard retrieval bounds.
func DefaultConfig() Config {
	return Config{
		Timeout: 2 * time.Second,
		TopK:    4,
	}
}

// New creates a Retriever over the given searcher.
func New(searcher Searcher, cfg Config) *Retriever {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultConfig().TopK
	}
	return &Retriever{searcher: searcher, timeout: cfg.Timeout, k: cfg.TopK}
}

// Retrieve returns up to TopK exemplars ordered by descending score.
// Never returns an error; a nil searcher, a timeout, or a search failure
// all yield an empty list.
func (r *Retriever) Retrieve(ctx context.Context, query string, f Filters) []Exemplar {
	if r == nil || r.searcher == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.searcher.Search(ctx, query, f, r.k)
	if err != nil {
		return nil
	}
	return out
}
