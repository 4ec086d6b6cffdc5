package orchestrator

import (
	"github.com/quizforge/quizforge/internal/calibrate"
	"github.com/quizforge/quizforge/internal/item"
	"github.com/quizforge/quizforge/internal/metrics"
	"github.com/quizforge/quizforge/internal/retrieval"
	"github.com/quizforge/quizforge/internal/validate"
)

// State is the pipeline position of one item slot.
type State string

const (
	StateInit      State = "INIT"
	StateRetrieve  State = "RETRIEVE"
	StateCalibrate State = "CALIBRATE"
	StateGenerate  State = "GENERATE"
	StateValidate  State = "VALIDATE"
	StateEnhance   State = "ENHANCE"
	StateFallback  State = "FALLBACK"

	StateDoneAccepted State = "DONE_ACCEPTED"
	StateDoneFallback State = "DONE_FALLBACK"
	StateDoneInvalid  State = "DONE_INVALID_REQUEST"
	StateDoneCanceled State = "DONE_CANCELED"
)

// Outcome is the terminal disposition of one item slot.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeFallback Outcome = "fallback"
	OutcomeCanceled Outcome = "canceled"
)

// PipelineState is the per-item mutable record threaded through the
// stages. Exactly one pipeline owns it; it is never shared across
// goroutines.
type PipelineState struct {
	// Index is the item's position in the original request.
	Index   int
	Request item.Request

	State   State
	Retries int

	// Feedback holds the previous attempt's validation issues and is
	// fed to the next generation attempt.
	Feedback []validate.Issue

	// Diagnostics accumulates every issue code raised across all of
	// this slot's attempts, surviving into the settled result.
	Diagnostics []validate.IssueCode

	Exemplars   []retrieval.Exemplar
	Calibration calibrate.Params

	// Candidate is the current generation attempt's output.
	Candidate  *item.Item
	Validation validate.Result

	Outcome Outcome
	Item    *item.Item

	Timings map[string]int64
}

func newPipelineState(index int, req item.Request) *PipelineState {
	return &PipelineState{
		Index:   index,
		Request: req,
		State:   StateInit,
		Timings: make(map[string]int64),
	}
}

// recordFeedback folds the current feedback's issue codes into the
// slot's diagnostics before the next attempt overwrites them.
func (ps *PipelineState) recordFeedback() {
	for _, iss := range ps.Feedback {
		ps.Diagnostics = append(ps.Diagnostics, iss.Code)
	}
}

// ItemResult is one settled slot in a WorkflowResult.
type ItemResult struct {
	Item    *item.Item
	Outcome Outcome
	Metrics metrics.ItemMetrics

	// Diagnostics lists every issue code raised while settling this
	// slot, across all attempts. Empty for a first-attempt accept.
	Diagnostics []validate.IssueCode
}

// WorkflowResult is the settled batch, in original request order.
type WorkflowResult struct {
	Items   []ItemResult
	Summary metrics.BatchSummary

	// Diagnostics is the sorted, deduplicated union of every issue
	// code raised across the batch. It explains retries and fallbacks
	// without digging through per-item records.
	Diagnostics []validate.IssueCode

	// Canceled is true when the batch stopped early on cancellation;
	// Items then holds a mix of settled and canceled slots.
	Canceled bool
}
