package engine

import "fmt"

// FatalErrorKind taxonomizes why a run aborted before producing any
// RosterResponse at all. Infeasibility and timeout are deliberately not
// members of this taxonomy: per spec.md §7, exit from the pipeline is
// always a well-formed RosterResponse unless the request itself was
// malformed, so the Scheduler finding no feasible assignment surfaces as
// RosterResponse{Status: "failed"} (see orchestrator.go), not a
// FatalError.
type FatalErrorKind string

const (
	// ErrInvalidRequest means the request failed GenerateRequest.Validate.
	ErrInvalidRequest FatalErrorKind = "invalid_request"
	// ErrInvalidInput means the employee/store input was structurally
	// unusable (e.g. an employee missing an availability entry for a
	// horizon day).
	ErrInvalidInput FatalErrorKind = "invalid_input"
	// ErrInternal covers anything else: a bug, not a modeling failure.
	ErrInternal FatalErrorKind = "internal"
)

// FatalError aborts a run; the caller gets no RosterResponse (spec.md §7).
type FatalError struct {
	Kind    FatalErrorKind
	Message string
	Cause   error
}

func (e *FatalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FatalError) Unwrap() error { return e.Cause }

func fatal(kind FatalErrorKind, message string, cause error) *FatalError {
	return &FatalError{Kind: kind, Message: message, Cause: cause}
}
