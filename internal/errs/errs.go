// Package errs defines the error kinds from spec.md §7 as a small tagged
// error type, in the idiom of the teacher's policysimulator.PolicySimulatorError
// (code + message + optional cause, constructor, WithDetails-style builder).
package errs

import "fmt"

// Kind is one of the five error kinds spec.md §7 names. These are kinds, not
// Go types: every stage-local error is a *Error carrying one of these kinds.
type Kind string

const (
	InvalidInput    Kind = "invalid_input"
	StoreUnavailable Kind = "store_unavailable"
	BudgetExceeded  Kind = "budget_exceeded"
	Infeasible      Kind = "infeasible"
	Cancelled       Kind = "cancelled"
)

// Error is the core's single error type, tagged with a Kind.
type Error struct {
	Kind    Kind
	Message string
	Details string
	cause   error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind wrapping a cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// WithDetails returns a copy of e with Details set.
func (e *Error) WithDetails(details string) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Details: details, cause: e.cause}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}
