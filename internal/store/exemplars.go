package store

import (
	"context"
	"fmt"
)

// Exemplar is a previously accepted item kept for retrieval grounding.
type Exemplar struct {
	ID         int64
	Topic      string
	GradeLevel int
	Difficulty string
	Text       string
	Answer     string
}

// ExemplarFilters narrows an exemplar query. Topic is required; a zero
// GradeBand means exact grade match only.
type ExemplarFilters struct {
	Topic      string
	GradeLevel int
	GradeBand  int // include grades within ±GradeBand
	Difficulty string
}

// ExemplarRepo manages the exemplar similarity store.
type ExemplarRepo interface {
	// Add inserts one exemplar.
	Add(ctx context.Context, ex Exemplar) error

	// Candidates returns exemplars matching the filters, most recent
	// first, up to limit. Relevance scoring happens in the retrieval
	// layer; this is the raw filtered candidate set.
	Candidates(ctx context.Context, f ExemplarFilters, limit int) ([]Exemplar, error)

	// Count returns the number of stored exemplars.
	Count(ctx context.Context) (int, error)
}

// ExemplarRepo returns an ExemplarRepo backed by this store.
func (s *Store) ExemplarRepo() ExemplarRepo {
	return &exemplarRepo{s: s}
}

type exemplarRepo struct {
	s *Store
}

func (r *exemplarRepo) Add(ctx context.Context, ex Exemplar) error {
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO exemplars (topic, grade_level, difficulty, text, answer)
		 VALUES (?, ?, ?, ?, ?)`,
		ex.Topic, ex.GradeLevel, ex.Difficulty, ex.Text, ex.Answer,
	)
	if err != nil {
		return fmt.Errorf("insert exemplar: %w", err)
	}
	return nil
}

func (r *exemplarRepo) Candidates(ctx context.Context, f ExemplarFilters, limit int) ([]Exemplar, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, topic, grade_level, difficulty, text, answer
		FROM exemplars
		WHERE topic = ? AND grade_level BETWEEN ? AND ?`
	args := []any{f.Topic, f.GradeLevel - f.GradeBand, f.GradeLevel + f.GradeBand}

	if f.Difficulty != "" {
		query += ` AND difficulty = ?`
		args = append(args, f.Difficulty)
	}

	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exemplars: %w", err)
	}
	defer rows.Close()

	var out []Exemplar
	for rows.Next() {
		var ex Exemplar
		if err := rows.Scan(&ex.ID, &ex.Topic, &ex.GradeLevel, &ex.Difficulty, &ex.Text, &ex.Answer); err != nil {
			return nil, fmt.Errorf("scan exemplar: %w", err)
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

func (r *exemplarRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exemplars`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count exemplars: %w", err)
	}
	return n, nil
}
