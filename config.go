package lstar

import (
	"fmt"

	"github.com/hupe1980/lstar/table"
)

// ClosingStrategy selects the rows promoted to close the table: one row out
// of every unclosed class.
type ClosingStrategy int

const (
	// CloseFirst promotes the first row of every class.
	CloseFirst ClosingStrategy = iota
	// CloseShortest promotes the row with the shortest label of every class.
	// Ties go to the row created first.
	CloseShortest
)

func (s ClosingStrategy) String() string {
	switch s {
	case CloseFirst:
		return "first"
	case CloseShortest:
		return "shortest"
	default:
		return fmt.Sprintf("ClosingStrategy(%d)", int(s))
	}
}

func selectRows[I comparable](s ClosingStrategy, classes [][]*table.Row[I]) []*table.Row[I] {
	out := make([]*table.Row[I], 0, len(classes))
	for _, class := range classes {
		if len(class) == 0 {
			continue
		}
		pick := class[0]
		if s == CloseShortest {
			for _, r := range class[1:] {
				if r.Label().Len() < pick.Label().Len() ||
					(r.Label().Len() == pick.Label().Len() && r.ID() < pick.ID()) {
					pick = r
				}
			}
		}
		out = append(out, pick)
	}
	return out
}

// Config controls the refinement loop.
type Config struct {
	// ClosingStrategy picks the rows promoted per unclosed class.
	ClosingStrategy ClosingStrategy

	// MaxRounds bounds the closing and consistency steps of a single
	// refinement. 0 means no limit.
	MaxRounds int

	// CheckConsistency enables the consistency check. Without it the table
	// is only kept closed, which suffices while no two short rows share
	// contents.
	CheckConsistency bool
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		ClosingStrategy:  CloseFirst,
		MaxRounds:        0,
		CheckConsistency: true,
	}
}

func (c Config) validate() error {
	if c.ClosingStrategy != CloseFirst && c.ClosingStrategy != CloseShortest {
		return fmt.Errorf("%w: unknown closing strategy %s", ErrInvalidArgument, c.ClosingStrategy)
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("%w: max rounds must not be negative", ErrInvalidArgument)
	}
	return nil
}
