package table

import (
	"context"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"slices"

	"github.com/hupe1980/lstar/internal/bitmap"
	"github.com/hupe1980/lstar/internal/hashindex"
	"github.com/hupe1980/lstar/oracle"
	"github.com/hupe1980/lstar/word"
)

type options struct {
	logger *slog.Logger
}

// Option configures a Table.
type Option func(*options)

// WithLogger sets the logger growth operations report to at debug level.
// If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Table is an observation table: rows indexed by prefixes, columns indexed
// by suffixes, and for every cell the answer to the membership query
// (prefix, suffix).
//
// Row contents are interned, so comparing two rows is a comparison of
// content ids. The table exclusively owns its rows; rows are never deleted,
// only appended or promoted from long to short.
//
// A Table is not safe for concurrent use. Every growth operation issues at
// most one batch to the membership oracle and applies its mutations only
// after the batch has been answered, so a failing oracle leaves the table
// unchanged.
type Table[I comparable, O comparable] struct {
	alphabet *word.Alphabet[I]

	rows      []*Row[I]
	shortRows []RowID
	longRows  []RowID
	labels    *hashindex.Index[word.Word[I]]

	suffixes    []word.Word[I]
	suffixIndex *hashindex.Index[word.Word[I]]

	store *contentStore[O]
	// Content ids held by at least one short row.
	shortContents *bitmap.IDSet

	initialConsistencyCheckRequired bool

	seed   maphash.Seed
	logger *slog.Logger
}

// New creates an empty table over a copy of alphabet. Call Initialize before
// using it.
func New[I comparable, O comparable](alphabet *word.Alphabet[I], optFns ...Option) *Table[I, O] {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := &Table[I, O]{
		alphabet:      alphabet.Clone(),
		shortContents: bitmap.New(),
		seed:          maphash.MakeSeed(),
		logger:        opts.logger,
	}
	t.labels = hashindex.New(t.hashWord, word.Word[I].Equal, func(id int) word.Word[I] {
		return t.rows[id].label
	})
	t.suffixIndex = hashindex.New(t.hashWord, word.Word[I].Equal, func(id int) word.Word[I] {
		return t.suffixes[id]
	})
	t.store = newContentStore[O](t.seed)
	return t
}

func (t *Table[I, O]) hashWord(w word.Word[I]) uint64 {
	var h maphash.Hash
	h.SetSeed(t.seed)
	w.WriteHash(&h)
	return h.Sum64()
}

// IsInitialized reports whether the table contains any rows.
func (t *Table[I, O]) IsInitialized() bool { return len(t.rows) > 0 }

// InitialConsistencyCheckRequired reports whether Initialize found two short
// rows with equal contents. Only then can the freshly initialized table be
// inconsistent.
func (t *Table[I, O]) InitialConsistencyCheckRequired() bool {
	return t.initialConsistencyCheckRequired
}

// Alphabet returns a copy of the input alphabet.
func (t *Table[I, O]) Alphabet() *word.Alphabet[I] { return t.alphabet.Clone() }

// Suffixes returns the column labels in column order.
func (t *Table[I, O]) Suffixes() []word.Word[I] { return slices.Clone(t.suffixes) }

// NumSuffixes returns the number of columns.
func (t *Table[I, O]) NumSuffixes() int { return len(t.suffixes) }

// NumShortRows returns the number of short prefix rows.
func (t *Table[I, O]) NumShortRows() int { return len(t.shortRows) }

// NumLongRows returns the number of long prefix rows.
func (t *Table[I, O]) NumLongRows() int { return len(t.longRows) }

// NumTotalRows returns the number of rows.
func (t *Table[I, O]) NumTotalRows() int { return len(t.rows) }

// NumDistinctContents returns the number of distinct row contents seen so far.
func (t *Table[I, O]) NumDistinctContents() int { return t.store.size() }

// ShortRows returns the short prefix rows in the order they became short.
func (t *Table[I, O]) ShortRows() []*Row[I] { return t.resolve(t.shortRows) }

// LongRows returns the long prefix rows.
func (t *Table[I, O]) LongRows() []*Row[I] { return t.resolve(t.longRows) }

// AllRows returns all rows in creation order.
func (t *Table[I, O]) AllRows() []*Row[I] { return slices.Clone(t.rows) }

func (t *Table[I, O]) resolve(ids []RowID) []*Row[I] {
	out := make([]*Row[I], len(ids))
	for i, id := range ids {
		out[i] = t.rows[id]
	}
	return out
}

// Row returns the row with the given id.
func (t *Table[I, O]) Row(id RowID) (*Row[I], bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return nil, false
	}
	return t.rows[id], true
}

// RowByLabel returns the row labeled prefix.
func (t *Table[I, O]) RowByLabel(prefix word.Word[I]) (*Row[I], bool) {
	id, ok := t.labels.Lookup(prefix)
	if !ok {
		return nil, false
	}
	return t.rows[id], true
}

// RowSuccessor returns the successor of the short row for sym.
func (t *Table[I, O]) RowSuccessor(row *Row[I], sym I) (*Row[I], error) {
	if !t.owns(row) {
		return nil, fmt.Errorf("%w: row is not part of this table", ErrInvalidArgument)
	}
	idx, ok := t.alphabet.Index(sym)
	if !ok {
		return nil, fmt.Errorf("%w: symbol %v is not part of the alphabet", ErrInvalidArgument, sym)
	}
	succ, ok := row.Successor(idx)
	if !ok {
		return nil, fmt.Errorf("%w: row %s is not a short prefix row", ErrInvalidArgument, row.label)
	}
	return t.rows[succ], nil
}

// RowContents returns a copy of the row's content vector, one answer per
// suffix in column order.
func (t *Table[I, O]) RowContents(row *Row[I]) ([]O, error) {
	if !t.owns(row) {
		return nil, fmt.Errorf("%w: row is not part of this table", ErrInvalidArgument)
	}
	return slices.Clone(t.store.contentOf(row.contentID)), nil
}

// CellContents returns the answer recorded for (row, suffixes[col]).
func (t *Table[I, O]) CellContents(row *Row[I], col int) (O, error) {
	var zero O
	if !t.owns(row) {
		return zero, fmt.Errorf("%w: row is not part of this table", ErrInvalidArgument)
	}
	if col < 0 || col >= len(t.suffixes) {
		return zero, fmt.Errorf("%w: column %d out of range [0, %d)", ErrInvalidArgument, col, len(t.suffixes))
	}
	return t.store.contentOf(row.contentID)[col], nil
}

// CanonicalRow returns the designated short row representing content id.
func (t *Table[I, O]) CanonicalRow(id ContentID) (*Row[I], bool) {
	if id < 0 || int(id) >= t.store.size() {
		return nil, false
	}
	r, ok := t.store.canonicalRowOf(id)
	if !ok {
		return nil, false
	}
	return t.rows[r], true
}

// ObserveCell checks an externally obtained answer for (prefix, suffix)
// against the table. It fails with ErrInvalidArgument if no row is labeled
// prefix or suffix is not a column, and with an *oracle.AnswerConflictError
// if the table recorded a different answer.
func (t *Table[I, O]) ObserveCell(prefix, suffix word.Word[I], answer O) error {
	row, ok := t.RowByLabel(prefix)
	if !ok {
		return fmt.Errorf("%w: no row for prefix %s", ErrInvalidArgument, prefix)
	}
	col, ok := t.suffixIndex.Lookup(suffix)
	if !ok {
		return fmt.Errorf("%w: suffix %s is not part of the suffix set", ErrInvalidArgument, suffix)
	}
	if recorded := t.store.contentOf(row.contentID)[col]; recorded != answer {
		return &oracle.AnswerConflictError{
			Query:    oracle.NewQuery(prefix, suffix).String(),
			Recorded: recorded,
			Got:      answer,
		}
	}
	return nil
}

func (t *Table[I, O]) owns(row *Row[I]) bool {
	return row != nil && row.id >= 0 && int(row.id) < len(t.rows) && t.rows[row.id] == row
}

// root returns the row of the empty word.
func (t *Table[I, O]) root() *Row[I] { return t.rows[t.shortRows[0]] }

// ask submits queries as one batch and validates the answer count.
func (t *Table[I, O]) ask(ctx context.Context, mo oracle.MembershipOracle[I, O], queries []oracle.Query[I]) ([]O, error) {
	if len(queries) == 0 {
		return nil, nil
	}
	answers, err := mo.AnswerQueries(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("membership oracle: %w", err)
	}
	if err := oracle.CheckAnswers(queries, answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// appendQueries adds one query per suffix for prefix.
func appendQueries[I comparable](dst []oracle.Query[I], prefix word.Word[I], suffixes []word.Word[I]) []oracle.Query[I] {
	for _, s := range suffixes {
		dst = append(dst, oracle.NewQuery(prefix, s))
	}
	return dst
}
