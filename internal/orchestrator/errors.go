package orchestrator

import (
	"errors"
	"fmt"

	"github.com/quizforge/quizforge/internal/validate"
)

// ErrInvalidRequest rejects a malformed request before any pipeline
// work starts.
type ErrInvalidRequest struct {
	Reason string
}

func (e *ErrInvalidRequest) Error() string {
	return "invalid request: " + e.Reason
}

// IsInvalidRequest reports whether err is a request shape rejection.
func IsInvalidRequest(err error) bool {
	var e *ErrInvalidRequest
	return errors.As(err, &e)
}

// ErrFallbackIntegrity reports a fallback template that failed its
// structural check. Templates are validated by construction, so this
// is a configuration bug, not a pipeline failure, and it aborts the
// batch.
type ErrFallbackIntegrity struct {
	Category string
	Issues   []validate.Issue
	Err      error
}

func (e *ErrFallbackIntegrity) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fallback template for %q is defective: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("fallback template for %q is defective: %d issues", e.Category, len(e.Issues))
}

func (e *ErrFallbackIntegrity) Unwrap() error { return e.Err }
