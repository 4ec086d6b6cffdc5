package validate

// IssueCode identifies a specific validation failure. Issue codes feed
// back into the next generation attempt as corrective input.
type IssueCode string

const (
	IssueMissingAnswer         IssueCode = "missing_answer"
	IssuePlaceholderAnswer     IssueCode = "placeholder_answer"
	IssueAnswerTypeMismatch    IssueCode = "answer_type_mismatch"
	IssueUnknownCategory       IssueCode = "unknown_category"
	IssueBadOperands           IssueCode = "bad_operands"
	IssueTextMissing           IssueCode = "text_missing"
	IssueTextTooLong           IssueCode = "text_too_long"
	IssueExplanationMissing    IssueCode = "explanation_missing"
	IssueExplanationTooLong    IssueCode = "explanation_too_long"
	IssueBadFormat             IssueCode = "bad_format"
	IssueChoiceCount           IssueCode = "choice_count"
	IssueDuplicateChoice       IssueCode = "duplicate_choice"
	IssueAnswerNotInChoices    IssueCode = "answer_not_in_choices"
	IssueChoicesOnNumeric      IssueCode = "choices_on_numeric"
	IssueCorrectnessMismatch   IssueCode = "correctness_mismatch"
	IssueUncomputable          IssueCode = "uncomputable_operands"
	IssueNegativeBelowGrade    IssueCode = "negative_below_grade"
	IssueFractionTooComplex    IssueCode = "fraction_too_complex"
	IssueWeakExplanation       IssueCode = "weak_explanation"
	IssueInsufficientDiversity IssueCode = "insufficient_diversity"
)

// Issue is a single validation finding.
type Issue struct {
	Code   IssueCode
	Detail string
}

// Result aggregates all checks for one candidate. Deterministic and
// side-effect-free for a fixed candidate and batch.
type Result struct {
	// Pass is true only when every boolean check passed and the
	// diversity score cleared the configured minimum.
	Pass bool

	Structural  bool
	Correctness bool
	Appropriate bool
	Pedagogical bool

	// Diversity is the minimum textual/structural distance to any
	// already-accepted item in the batch, in [0,1]. 1 when the batch
	// is empty.
	Diversity float64

	Issues []Issue

	// Confidence is a weighted combination of check outcomes in [0,1].
	Confidence float64
}

// Codes returns just the issue codes, for feedback prompts and diagnostics.
func (r Result) Codes() []IssueCode {
	out := make([]IssueCode, len(r.Issues))
	for i, iss := range r.Issues {
		out[i] = iss.Code
	}
	return out
}
