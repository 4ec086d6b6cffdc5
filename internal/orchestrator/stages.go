package orchestrator

import (
	"context"
	"fmt"

	"github.com/quizforge/quizforge/internal/calibrate"
	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/metrics"
	"github.com/quizforge/quizforge/internal/retrieval"
)

// Stage is one pipeline step. Run mutates the state it is handed and
// returns an error only when the stage could not settle the state at
// all; recoverable conditions are recorded on the state instead.
type Stage interface {
	Name() string
	Run(ctx context.Context, ps *PipelineState) error
}

// Collaborator contracts, satisfied by the concrete packages and by
// test stubs.

type Retriever interface {
	Retrieve(ctx context.Context, query string, f retrieval.Filters) []retrieval.Exemplar
}

type Calibrator interface {
	Calibrate(ctx context.Context, persona *item.Persona, req item.Request) calibrate.Params
}

type Enhancer interface {
	Enhance(ctx context.Context, it *item.Item, persona *item.Persona) *item.Item
}

type FallbackLibrary interface {
	Pick(req item.Request) (*item.Item, error)
}

// Sink receives settled items. Persistence failures are reported but
// never fail the batch.
type Sink interface {
	PersistItem(ctx context.Context, it *item.Item, fallbackUsed bool, confidence float64) error
}

// runStage times a stage and accumulates the elapsed milliseconds on
// the state, summing across retries of the same stage.
func runStage(ctx context.Context, st Stage, ps *PipelineState) error {
	timer := metrics.StartTimer()
	err := st.Run(ctx, ps)
	ps.Timings[st.Name()] += timer.ElapsedMs()
	return err
}

type retrieveStage struct {
	retriever Retriever
}

func (s retrieveStage) Name() string { return "retrieve" }

// Run is advisory: an unavailable or slow store yields an empty
// exemplar list, never an error.
func (s retrieveStage) Run(ctx context.Context, ps *PipelineState) error {
	ps.State = StateRetrieve
	if s.retriever == nil {
		return nil
	}
	query := fmt.Sprintf("%s %s grade %d %s",
		ps.Request.Subject, ps.Request.Topic, ps.Request.GradeLevel, ps.Request.Difficulty)
	ps.Exemplars = s.retriever.Retrieve(ctx, query, retrieval.Filters{
		Topic:      ps.Request.Topic,
		GradeLevel: ps.Request.GradeLevel,
		Difficulty: string(ps.Request.Difficulty),
	})
	return nil
}

type calibrateStage struct {
	calibrator Calibrator
}

func (s calibrateStage) Name() string { return "calibrate" }

func (s calibrateStage) Run(ctx context.Context, ps *PipelineState) error {
	ps.State = StateCalibrate
	ps.Calibration = s.calibrator.Calibrate(ctx, ps.Request.Persona, ps.Request)
	return nil
}

type generateStage struct {
	generator generate.Generator
}

func (s generateStage) Name() string { return "generate" }

func (s generateStage) Run(ctx context.Context, ps *PipelineState) error {
	ps.State = StateGenerate
	candidate, err := s.generator.Generate(ctx, generate.Input{
		Request:     ps.Request,
		Calibration: ps.Calibration,
		Exemplars:   ps.Exemplars,
		Feedback:    ps.Feedback,
	})
	if err != nil {
		return err
	}
	ps.Candidate = candidate
	return nil
}

type enhanceStage struct {
	enhancer Enhancer
}

func (s enhanceStage) Name() string { return "enhance" }

func (s enhanceStage) Run(ctx context.Context, ps *PipelineState) error {
	ps.State = StateEnhance
	if s.enhancer == nil || ps.Item == nil {
		return nil
	}
	ps.Item = s.enhancer.Enhance(ctx, ps.Item, ps.Request.Persona)
	return nil
}
