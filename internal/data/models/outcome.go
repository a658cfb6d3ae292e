package models

import "fmt"

// OutcomeKind discriminates the variants of Outcome.
type OutcomeKind int

const (
	// outcomeInvalid is the zero value; constructors never produce it.
	outcomeInvalid OutcomeKind = iota
	OutcomeFound
	OutcomeNotFound
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	default:
		return "invalid"
	}
}

// Outcome is the result of retrieving a single artifact: Found(value),
// NotFound, or Error(err). Exactly one variant is populated.
type Outcome[T any] struct {
	kind  OutcomeKind
	value T
	err   error
}

func Found[T any](v T) Outcome[T] {
	return Outcome[T]{kind: OutcomeFound, value: v}
}

func NotFound[T any]() Outcome[T] {
	return Outcome[T]{kind: OutcomeNotFound}
}

// Failed returns an Error outcome. A nil err is replaced with a generic one so
// the variant always carries a reason.
func Failed[T any](err error) Outcome[T] {
	if err == nil {
		err = fmt.Errorf("unknown error")
	}
	return Outcome[T]{kind: OutcomeError, err: err}
}

func (o Outcome[T]) Kind() OutcomeKind {
	return o.kind
}

// Value returns the found value and true, or the zero value and false for
// every other variant.
func (o Outcome[T]) Value() (T, bool) {
	if o.kind != OutcomeFound {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Err returns the failure for Error outcomes and nil otherwise.
func (o Outcome[T]) Err() error {
	if o.kind != OutcomeError {
		return nil
	}
	return o.err
}

func (o Outcome[T]) String() string {
	switch o.kind {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not found"
	case OutcomeError:
		return "error: " + o.err.Error()
	default:
		return "invalid outcome"
	}
}
