package table

import (
	"errors"

	"github.com/hupe1980/lstar/oracle"
)

var (
	// ErrInvalidState is returned when an operation is invoked in a table
	// lifecycle state that does not allow it, e.g. initializing twice.
	ErrInvalidState = errors.New("invalid table state")

	// ErrInvalidArgument is returned for malformed input, e.g. a short prefix
	// set that is not prefix-closed or a row that is not part of the table.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternalInvariant is returned when a guaranteed structural property
	// does not hold. It indicates a bug, not a recoverable condition.
	ErrInternalInvariant = errors.New("internal invariant violated")

	// ErrAnswerConflict is returned when an answer differs from the value
	// already recorded for the same cell.
	ErrAnswerConflict = oracle.ErrAnswerConflict
)
