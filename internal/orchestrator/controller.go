// Package orchestrator sequences the item pipeline: retrieve,
// calibrate, generate, validate, and optionally enhance, with bounded
// retry-with-feedback and a fallback template when the retry budget
// runs out. One controller serves one batch request at a time; all
// per-item state lives in PipelineState.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/metrics"
	"github.com/quizforge/quizforge/internal/validate"
)

// Config bounds one batch run. Constructed once at startup and passed
// down; stages never read ambient state.
type Config struct {
	// MaxRetries is the number of additional generation attempts after
	// the first, per item.
	MaxRetries int

	// Workers bounds how many item pipelines run concurrently.
	Workers int

	// StageTimeout caps each external call (retrieval is separately
	// capped by the retriever's own budget).
	StageTimeout time.Duration

	// RetryBaseDelay is the first backoff pause; it doubles per retry.
	RetryBaseDelay time.Duration

	EnhancementEnabled bool
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:         3,
		Workers:            4,
		StageTimeout:       60 * time.Second,
		RetryBaseDelay:     500 * time.Millisecond,
		EnhancementEnabled: false,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.StageTimeout <= 0 {
		c.StageTimeout = d.StageTimeout
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = d.RetryBaseDelay
	}
	return c
}

// Controller drives item pipelines to a settled WorkflowResult.
type Controller struct {
	cfg       Config
	retriever Retriever
	calib     Calibrator
	generator generate.Generator
	validator *validate.Validator
	enhancer  Enhancer
	fallback  FallbackLibrary
	sink      Sink
}

// NewController wires the pipeline. retriever, enhancer, and sink may
// be nil; calibrator, generator, validator, and fallback are required.
func NewController(
	cfg Config,
	retriever Retriever,
	calib Calibrator,
	generator generate.Generator,
	validator *validate.Validator,
	enhancer Enhancer,
	fb FallbackLibrary,
	sink Sink,
) *Controller {
	return &Controller{
		cfg:       cfg.withDefaults(),
		retriever: retriever,
		calib:     calib,
		generator: generator,
		validator: validator,
		enhancer:  enhancer,
		fallback:  fb,
		sink:      sink,
	}
}

// GenerateBatch runs one pipeline per requested item, up to Workers at
// a time, and assembles results in request order. It returns
// ErrInvalidRequest for a malformed request, ErrFallbackIntegrity when
// a fallback template fails its own checks, and a partial result with
// Canceled set when ctx is canceled mid-batch.
func (c *Controller) GenerateBatch(ctx context.Context, req item.Request) (*WorkflowResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ledger := newBatchLedger()
	collector := metrics.NewCollector()
	results := make([]ItemResult, req.Count)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		fatalMu  sync.Mutex
		fatalErr error
	)
	jobs := make(chan int)

	for w := 0; w < c.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				ps := newPipelineState(idx, req)
				if err := c.runPipeline(ctx, ps, ledger); err != nil {
					fatalMu.Lock()
					if fatalErr == nil {
						fatalErr = err
					}
					fatalMu.Unlock()
					cancel()
					return
				}
				results[idx] = settle(ps)
				collector.Record(results[idx].Metrics)
			}
		}()
	}

	for i := 0; i < req.Count; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			i = req.Count // stop feeding, workers drain on ctx
		}
	}
	close(jobs)
	wg.Wait()

	fatalMu.Lock()
	err := fatalErr
	fatalMu.Unlock()
	if err != nil {
		return nil, err
	}

	res := &WorkflowResult{
		Items:       results,
		Summary:     collector.Summary(),
		Diagnostics: batchDiagnostics(results),
	}
	for i := range results {
		if results[i].Item == nil {
			results[i].Outcome = OutcomeCanceled
			res.Canceled = true
		}
	}
	return res, nil
}

// validateRequest is the INIT transition: a bad request terminates
// before any stage runs or any retry budget is spent.
func validateRequest(req item.Request) error {
	if req.GradeLevel < item.MinGrade || req.GradeLevel > item.MaxGrade {
		return &ErrInvalidRequest{Reason: fmt.Sprintf("grade level %d outside %d-%d", req.GradeLevel, item.MinGrade, item.MaxGrade)}
	}
	if req.Count < 1 {
		return &ErrInvalidRequest{Reason: fmt.Sprintf("count %d, need at least 1", req.Count)}
	}
	if _, ok := item.CategoryFromTopic(req.Topic); !ok {
		return &ErrInvalidRequest{Reason: fmt.Sprintf("unsupported topic %q", req.Topic)}
	}
	switch req.Difficulty {
	case item.DifficultyEasy, item.DifficultyMedium, item.DifficultyHard:
	default:
		return &ErrInvalidRequest{Reason: fmt.Sprintf("unknown difficulty %q", req.Difficulty)}
	}
	switch req.Format {
	case "", item.FormatNumeric, item.FormatMultipleChoice:
	default:
		return &ErrInvalidRequest{Reason: fmt.Sprintf("unknown format %q", req.Format)}
	}
	return nil
}

// runPipeline drives one item to a terminal state. The returned error
// is fatal for the whole batch; everything recoverable is resolved
// here.
func (c *Controller) runPipeline(ctx context.Context, ps *PipelineState, ledger *batchLedger) error {
	if canceled(ctx) {
		ps.State = StateDoneCanceled
		ps.Outcome = OutcomeCanceled
		return nil
	}

	_ = runStage(ctx, retrieveStage{c.retriever}, ps)

	if canceled(ctx) {
		ps.State = StateDoneCanceled
		ps.Outcome = OutcomeCanceled
		return nil
	}

	_ = runStage(ctx, calibrateStage{c.calib}, ps)

	for {
		if canceled(ctx) {
			ps.State = StateDoneCanceled
			ps.Outcome = OutcomeCanceled
			return nil
		}

		genErr := c.runGenerate(ctx, ps)
		if genErr != nil {
			if canceled(ctx) {
				ps.State = StateDoneCanceled
				ps.Outcome = OutcomeCanceled
				return nil
			}
			// defects and transient failures both consume a retry
			ps.Feedback = feedbackForError(genErr)
		} else {
			ok := c.runValidate(ctx, ps, ledger)
			if ok {
				break
			}
			ps.Feedback = ps.Validation.Issues
		}
		ps.recordFeedback()

		if ps.Retries >= c.cfg.MaxRetries {
			return c.runFallback(ctx, ps, ledger)
		}
		ps.Retries++
		if !c.backoff(ctx, ps.Retries) {
			ps.State = StateDoneCanceled
			ps.Outcome = OutcomeCanceled
			return nil
		}
	}

	ps.Item = ps.Candidate
	ps.Outcome = OutcomeAccepted
	ps.State = StateDoneAccepted

	if c.cfg.EnhancementEnabled {
		_ = runStage(ctx, enhanceStage{c.enhancer}, ps)
		ps.State = StateDoneAccepted
	}

	c.persist(ctx, ps.Item, false, ps.Validation.Confidence)
	return nil
}

func (c *Controller) runGenerate(ctx context.Context, ps *PipelineState) error {
	genCtx, cancel := context.WithTimeout(ctx, c.cfg.StageTimeout)
	defer cancel()

	timer := metrics.StartTimer()
	err := generateStage{c.generator}.Run(genCtx, ps)
	ps.Timings["generate"] += timer.ElapsedMs()

	// a stage timeout is transient, not a batch cancellation
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("generation timed out after %s: %w", c.cfg.StageTimeout, err)
	}
	return err
}

func (c *Controller) runValidate(ctx context.Context, ps *PipelineState, ledger *batchLedger) bool {
	ps.State = StateValidate
	timer := metrics.StartTimer()
	ok, res := ledger.tryCommit(c.validator, ps.Candidate)
	ps.Timings["validate"] += timer.ElapsedMs()
	ps.Validation = res
	return ok
}

// runFallback substitutes the pre-authored template and runs the
// structural and correctness checks once. Templates pass by
// construction; a failure here is a configuration bug and aborts the
// batch.
func (c *Controller) runFallback(ctx context.Context, ps *PipelineState, ledger *batchLedger) error {
	ps.State = StateFallback
	fb, err := c.fallback.Pick(ps.Request)
	if err != nil {
		return &ErrFallbackIntegrity{Category: ps.Request.Topic, Err: err}
	}

	res := c.validator.Validate(fb, nil)
	if !res.Structural || !res.Correctness {
		return &ErrFallbackIntegrity{Category: string(fb.Category), Issues: res.Issues}
	}

	ledger.commitFallback(fb)
	ps.Item = fb
	ps.Validation = res
	ps.Outcome = OutcomeFallback
	ps.State = StateDoneFallback

	c.persist(ctx, fb, true, res.Confidence)
	return nil
}

func (c *Controller) persist(ctx context.Context, it *item.Item, fallbackUsed bool, confidence float64) {
	if c.sink == nil || it == nil {
		return
	}
	if err := c.sink.PersistItem(ctx, it, fallbackUsed, confidence); err != nil {
		fmt.Fprintf(os.Stderr, "warning: persist item %s: %v\n", it.ID, err)
	}
}

// backoff pauses before the next attempt, doubling per retry. Returns
// false when the batch was canceled during the pause.
func (c *Controller) backoff(ctx context.Context, retry int) bool {
	delay := c.cfg.RetryBaseDelay << (retry - 1)
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func feedbackForError(err error) []validate.Issue {
	if generate.IsDefect(err) {
		return []validate.Issue{{Code: "generation_defect", Detail: err.Error()}}
	}
	return []validate.Issue{{Code: "transient_error", Detail: err.Error()}}
}

func canceled(ctx context.Context) bool {
	return ctx.Err() != nil
}

// settle folds a terminal PipelineState into an ItemResult.
func settle(ps *PipelineState) ItemResult {
	return ItemResult{
		Item:    ps.Item,
		Outcome: ps.Outcome,
		Metrics: metrics.ItemMetrics{
			StageTimingsMs: ps.Timings,
			RetriesUsed:    ps.Retries,
			FallbackUsed:   ps.Outcome == OutcomeFallback,
			Confidence:     ps.Validation.Confidence,
		},
		Diagnostics: ps.Diagnostics,
	}
}

// batchDiagnostics unions the per-slot issue codes, sorted and
// deduplicated.
func batchDiagnostics(items []ItemResult) []validate.IssueCode {
	seen := make(map[validate.IssueCode]bool)
	var out []validate.IssueCode
	for _, res := range items {
		for _, code := range res.Diagnostics {
			if !seen[code] {
				seen[code] = true
				out = append(out, code)
			}
		}
	}
	slices.Sort(out)
	return out
}
