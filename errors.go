package lstar

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lstar/oracle"
	"github.com/hupe1980/lstar/table"
)

var (
	// ErrInvalidState is returned when an operation is invoked in the wrong
	// lifecycle state, e.g. refining before Start.
	ErrInvalidState = table.ErrInvalidState

	// ErrInvalidArgument is returned for malformed input.
	ErrInvalidArgument = table.ErrInvalidArgument

	// ErrInternalInvariant indicates a bug in the observation table.
	ErrInternalInvariant = table.ErrInternalInvariant

	// ErrAnswerConflict is returned when the membership oracle contradicts
	// an answer it gave before.
	ErrAnswerConflict = oracle.ErrAnswerConflict

	// ErrAnswerCount is returned when the membership oracle answers a batch
	// with the wrong number of answers.
	ErrAnswerCount = oracle.ErrAnswerCount

	// ErrRoundLimit is returned when Config.MaxRounds steps did not yield a
	// closed and consistent table.
	ErrRoundLimit = errors.New("round limit reached")
)

// ErrAnswerMismatch indicates that the oracle contradicted itself.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrAnswerMismatch struct {
	Query    string
	Recorded any
	Got      any
	cause    error
}

func (e *ErrAnswerMismatch) Error() string {
	return fmt.Sprintf("oracle answered %s with %v, previously %v", e.Query, e.Got, e.Recorded)
}

func (e *ErrAnswerMismatch) Unwrap() error { return e.cause }

// ErrBatchSize indicates a batch answered with the wrong number of answers.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrBatchSize struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrBatchSize) Error() string {
	return fmt.Sprintf("batch size mismatch: expected %d answers, got %d", e.Expected, e.Actual)
}

func (e *ErrBatchSize) Unwrap() error { return e.cause }

// ErrRoundLimitExceeded reports the limit that stopped a refinement.
type ErrRoundLimitExceeded struct {
	Limit int
}

func (e *ErrRoundLimitExceeded) Error() string {
	return fmt.Sprintf("%v: table not closed and consistent after %d rounds", ErrRoundLimit, e.Limit)
}

func (e *ErrRoundLimitExceeded) Unwrap() error { return ErrRoundLimit }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ac *oracle.AnswerConflictError
	if errors.As(err, &ac) {
		return &ErrAnswerMismatch{Query: ac.Query, Recorded: ac.Recorded, Got: ac.Got, cause: err}
	}
	var cnt *oracle.AnswerCountError
	if errors.As(err, &cnt) {
		return &ErrBatchSize{Expected: cnt.Want, Actual: cnt.Got, cause: err}
	}

	return err
}
