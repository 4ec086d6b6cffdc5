package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/quizforge/quizforge/internal/store"
)

// Searcher is the similarity-search collaborator contract. An empty
// result list is a valid response, never an error.
type Searcher interface {
	Search(ctx context.Context, query string, f Filters, k int) ([]Exemplar, error)
}

// StoreSearcher implements Searcher over the SQLite exemplar store,
// scoring candidates by token overlap with the query.
type StoreSearcher struct {
	repo store.ExemplarRepo

	// GradeBand widens the grade filter to ±GradeBand around the
	// requested grade. Zero means exact grade only.
	GradeBand int

	// CandidateLimit caps the raw rows pulled for scoring.
	CandidateLimit int
}

// NewStoreSearcher creates a StoreSearcher with default limits.
func NewStoreSearcher(repo store.ExemplarRepo) *StoreSearcher {
	return &StoreSearcher{repo: repo, GradeBand: 1, CandidateLimit: 200}
}

func (s *StoreSearcher) Search(ctx context.Context, query string, f Filters, k int) ([]Exemplar, error) {
	rows, err := s.repo.Candidates(ctx, store.ExemplarFilters{
		Topic:      f.Topic,
		GradeLevel: f.GradeLevel,
		GradeBand:  s.GradeBand,
		Difficulty: f.Difficulty,
	}, s.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("exemplar candidates: %w", err)
	}

	queryTokens := tokenize(query)

	scored := make([]Exemplar, 0, len(rows))
	for _, row := range rows {
		scored = append(scored, Exemplar{
			Text:       row.Text,
			Answer:     row.Answer,
			Score:      overlapScore(queryTokens, tokenize(row.Text)),
			Difficulty: row.Difficulty,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
