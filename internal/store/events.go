package store

import (
	"context"
	"fmt"

	"github.com/quizforge/quizforge/internal/llm"
)

// EventRepo appends and summarizes LLM request events. It satisfies
// llm.EventSink so it can be wired as logging middleware.
type EventRepo interface {
	llm.EventSink

	// UsageSummary aggregates token counts and cost across all events.
	UsageSummary(ctx context.Context) (UsageSummary, error)
}

// UsageSummary is a rollup of the LLM event log.
type UsageSummary struct {
	Requests     int
	Failures     int
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{s: s}
}

type eventRepo struct {
	s *Store
}

func (r *eventRepo) AppendLLMEvent(ctx context.Context, ev llm.Event) error {
	success := 0
	if ev.Success {
		success = 1
	}
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, cost_usd, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens,
		ev.LatencyMs, ev.CostUSD, success, ev.ErrorMessage, ev.RequestBody, ev.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) UsageSummary(ctx context.Context) (UsageSummary, error) {
	var sum UsageSummary
	err := r.s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(cost_usd), 0)
		 FROM llm_events`,
	).Scan(&sum.Requests, &sum.Failures, &sum.InputTokens, &sum.OutputTokens, &sum.CostUSD)
	if err != nil {
		return UsageSummary{}, fmt.Errorf("usage summary: %w", err)
	}
	return sum, nil
}
