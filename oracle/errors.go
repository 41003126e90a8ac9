package oracle

import (
	"errors"
	"fmt"
)

var (
	// ErrAnswerConflict is returned when an oracle reports, for a query that
	// was already answered, a value different from the recorded one.
	ErrAnswerConflict = errors.New("answer conflict")

	// ErrAnswerCount is returned when an oracle returns a different number of
	// answers than it was asked queries.
	ErrAnswerCount = errors.New("answer count mismatch")
)

// AnswerConflictError describes a conflicting answer.
//
// errors.Is(err, ErrAnswerConflict) reports true for it.
type AnswerConflictError struct {
	Query    string
	Recorded any
	Got      any
}

func (e *AnswerConflictError) Error() string {
	return fmt.Sprintf("answer conflict for %s: recorded %v, got %v", e.Query, e.Recorded, e.Got)
}

func (e *AnswerConflictError) Unwrap() error { return ErrAnswerConflict }

// AnswerCountError describes a batch answered with the wrong number of answers.
type AnswerCountError struct {
	Want int
	Got  int
}

func (e *AnswerCountError) Error() string {
	return fmt.Sprintf("answer count mismatch: asked %d queries, got %d answers", e.Want, e.Got)
}

func (e *AnswerCountError) Unwrap() error { return ErrAnswerCount }
