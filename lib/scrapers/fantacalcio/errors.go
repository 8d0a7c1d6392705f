package fantacalcio

import "fmt"

// The scraper never returns partial data: every operation either
// succeeds with a complete record or fails with exactly one of the
// error types below.

// ValidationError reports malformed caller input, detected before any
// network access happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// FetchError reports a transport-level failure: connection errors,
// timeouts, and non-success status codes. Callers may treat it as
// transient and retry.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PageStructureError reports markup that no longer matches the expected
// page shape. It signals an upstream site change and is actionable by a
// maintainer, not retryable.
type PageStructureError struct {
	Step string
	Err  error
}

func (e *PageStructureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unexpected page structure while extracting %s", e.Step)
	}
	return fmt.Sprintf("unexpected page structure while extracting %s: %s", e.Step, e.Err)
}

func (e *PageStructureError) Unwrap() error {
	return e.Err
}

// RoleMismatchError reports a request for the wrong role-specific
// summary shape, e.g. asking for outfield aggregates of a goalkeeper.
type RoleMismatchError struct {
	Role      string
	Requested string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf(
		"player role is %q, not a %s player, use the %s endpoint instead",
		e.Role, e.Requested, oppositeShape(e.Requested),
	)
}

func oppositeShape(requested string) string {
	if requested == "outfield" {
		return "goalkeeper"
	}
	return "outfield"
}

func structureError(step string, err error) *PageStructureError {
	return &PageStructureError{Step: step, Err: err}
}
