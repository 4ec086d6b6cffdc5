package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quizforge/quizforge/internal/item"
)

// AcceptedItem is the persistence record for a pipeline outcome. Written
// exactly once per accepted or fallback item.
type AcceptedItem struct {
	Item       item.Item
	Fallback   bool
	Confidence float64
}

// ItemRepo persists accepted items.
type ItemRepo interface {
	// Persist stores one accepted item.
	Persist(ctx context.Context, rec AcceptedItem) error

	// Count returns the number of persisted items.
	Count(ctx context.Context) (int, error)
}

// ItemRepo returns an ItemRepo backed by this store.
func (s *Store) ItemRepo() ItemRepo {
	return &itemRepo{s: s}
}

type itemRepo struct {
	s *Store
}

func (r *itemRepo) Persist(ctx context.Context, rec AcceptedItem) error {
	operands, err := json.Marshal(rec.Item.Operands)
	if err != nil {
		return fmt.Errorf("marshal operands: %w", err)
	}
	choices, err := json.Marshal(rec.Item.Choices)
	if err != nil {
		return fmt.Errorf("marshal choices: %w", err)
	}

	fallback := 0
	if rec.Fallback {
		fallback = 1
	}

	_, err = r.s.db.ExecContext(ctx,
		`INSERT INTO accepted_items
			(id, category, operands, answer, answer_type, format, choices,
			 text, explanation, grade_level, difficulty, fallback, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Item.ID, string(rec.Item.Category), string(operands), rec.Item.Answer,
		string(rec.Item.AnswerType), string(rec.Item.Format), string(choices),
		rec.Item.Text, rec.Item.Explanation, rec.Item.GradeLevel,
		string(rec.Item.Difficulty), fallback, rec.Confidence,
	)
	if err != nil {
		return fmt.Errorf("insert accepted item: %w", err)
	}
	return nil
}

func (r *itemRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accepted_items`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count accepted items: %w", err)
	}
	return n, nil
}
