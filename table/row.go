package table

import "github.com/hupe1980/lstar/word"

// RowID identifies a row for its whole lifetime. Ids are dense and follow
// creation order. They are handles, not part of row equality.
type RowID int

// ContentID identifies an interned row content vector.
type ContentID int

const (
	// NoRow marks an absent row reference.
	NoRow RowID = -1

	// NoContent is the content id of a row whose queries are not answered yet.
	NoContent ContentID = -1
)

// Row is a prefix (row label) of the observation table.
//
// Short rows are states of the hypothesis under construction and own a
// successor for every alphabet symbol. Long rows are one-symbol extensions of
// short rows. A long row can be promoted to short once; never the reverse.
//
// Rows are owned by their Table and are read-only for callers.
type Row[I comparable] struct {
	label     word.Word[I]
	id        RowID
	contentID ContentID

	// Position in the table's long-row collection; -1 for short rows.
	lpIndex int

	successors []RowID
}

func newRow[I comparable](label word.Word[I], id RowID) *Row[I] {
	return &Row[I]{
		label:     label,
		id:        id,
		contentID: NoContent,
	}
}

// Label returns the prefix this row represents.
func (r *Row[I]) Label() word.Word[I] { return r.label }

// ID returns the unique row id.
func (r *Row[I]) ID() RowID { return r.id }

// IsShort reports whether r is a short prefix row.
func (r *Row[I]) IsShort() bool { return r.lpIndex < 0 }

// ContentID returns the id of the row's contents, or NoContent.
func (r *Row[I]) ContentID() ContentID { return r.contentID }

// HasContents reports whether the row's queries have been answered.
func (r *Row[I]) HasContents() bool { return r.contentID != NoContent }

// Successor returns the id of the row labeled Label()·alphabet[idx]. ok is
// false for long rows and out-of-range indices.
func (r *Row[I]) Successor(idx int) (id RowID, ok bool) {
	if !r.IsShort() || idx < 0 || idx >= len(r.successors) {
		return NoRow, false
	}
	return r.successors[idx], true
}

// makeShort turns r into a short row with an empty successor table.
func (r *Row[I]) makeShort(alphabetSize int) {
	if r.successors != nil && r.IsShort() {
		return
	}
	r.lpIndex = -1
	r.successors = make([]RowID, alphabetSize)
	for i := range r.successors {
		r.successors[i] = NoRow
	}
}

// ensureInputCapacity grows the successor table to n slots, keeping the
// existing entries.
func (r *Row[I]) ensureInputCapacity(n int) {
	for len(r.successors) < n {
		r.successors = append(r.successors, NoRow)
	}
}
