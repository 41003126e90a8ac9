package table

import (
	"github.com/hupe1980/lstar/internal/bitmap"
	"github.com/hupe1980/lstar/internal/hashindex"
	"github.com/hupe1980/lstar/word"
)

// growthPlan stages the rows a growth operation creates once its batch has
// been answered. Planned rows get the ids they will have after commit, so
// successor links can be computed before the table is touched.
type growthPlan[I comparable, O comparable] struct {
	t      *Table[I, O]
	base   RowID
	labels []word.Word[I]
	short  []bool
	index  *hashindex.Index[word.Word[I]]
}

func (t *Table[I, O]) newPlan() *growthPlan[I, O] {
	p := &growthPlan[I, O]{
		t:    t,
		base: RowID(len(t.rows)),
	}
	p.index = hashindex.New(t.hashWord, word.Word[I].Equal, func(i int) word.Word[I] {
		return p.labels[i]
	})
	return p
}

// lookup finds the row labeled label among existing and planned rows.
func (p *growthPlan[I, O]) lookup(label word.Word[I]) (RowID, bool) {
	if id, ok := p.t.labels.Lookup(label); ok {
		return RowID(id), true
	}
	if i, ok := p.index.Lookup(label); ok {
		return p.base + RowID(i), true
	}
	return NoRow, false
}

// add plans a new row and returns its future id.
func (p *growthPlan[I, O]) add(label word.Word[I], short bool) RowID {
	p.labels = append(p.labels, label)
	p.short = append(p.short, short)
	p.index.Insert(label, len(p.labels)-1)
	return p.base + RowID(len(p.labels)-1)
}

// label returns the label of an existing or planned row.
func (p *growthPlan[I, O]) label(id RowID) word.Word[I] {
	if id < p.base {
		return p.t.rows[id].label
	}
	return p.labels[id-p.base]
}

// linkSuccessors plans a long row for every missing one-symbol extension of
// label and returns the successor ids in alphabet order together with the
// newly planned rows.
func (p *growthPlan[I, O]) linkSuccessors(label word.Word[I], fresh []RowID) ([]RowID, []RowID) {
	succ := make([]RowID, p.t.alphabet.Size())
	for i := range succ {
		ext := label.Append(p.t.alphabet.Symbol(i))
		id, ok := p.lookup(ext)
		if !ok {
			id = p.add(ext, false)
			fresh = append(fresh, id)
		}
		succ[i] = id
	}
	return succ, fresh
}

// commit creates the planned rows in the table.
func (p *growthPlan[I, O]) commit() {
	for i, label := range p.labels {
		p.t.createRow(label, p.short[i])
	}
}

// createRow appends a row without contents.
func (t *Table[I, O]) createRow(label word.Word[I], short bool) *Row[I] {
	row := newRow(label, RowID(len(t.rows)))
	t.rows = append(t.rows, row)
	t.labels.Insert(label, int(row.id))
	if short {
		row.makeShort(t.alphabet.Size())
		t.shortRows = append(t.shortRows, row.id)
	} else {
		row.lpIndex = len(t.longRows)
		t.longRows = append(t.longRows, row.id)
	}
	return row
}

// makeShort promotes a long row. The row is removed from the long
// collection by moving the last long row into its slot.
func (t *Table[I, O]) makeShort(row *Row[I]) {
	if row.IsShort() {
		return
	}
	last := len(t.longRows) - 1
	lastID := t.longRows[last]
	idx := row.lpIndex
	t.longRows[idx] = lastID
	t.rows[lastID].lpIndex = idx
	t.longRows = t.longRows[:last]

	row.makeShort(t.alphabet.Size())
	t.shortRows = append(t.shortRows, row.id)

	if row.HasContents() {
		if _, ok := t.store.canonicalRowOf(row.contentID); !ok {
			t.store.setCanonical(row.contentID, row.id)
		}
		t.shortContents.Add(int(row.contentID))
	}
}

// assignContents interns vec as the contents of row.
func (t *Table[I, O]) assignContents(row *Row[I], vec []O) bool {
	cid, isNew := t.store.intern(vec, row.id, row.IsShort())
	row.contentID = cid
	if row.IsShort() {
		t.shortContents.Add(int(cid))
	}
	return isNew
}

// unclosedCollector groups long rows whose content id no short row holds,
// by content id in first-discovery order.
type unclosedCollector[I comparable] struct {
	short     *bitmap.IDSet
	byContent map[ContentID]int
	classes   [][]*Row[I]
}

func newUnclosedCollector[I comparable](short *bitmap.IDSet) *unclosedCollector[I] {
	return &unclosedCollector[I]{
		short:     short,
		byContent: make(map[ContentID]int),
	}
}

func (c *unclosedCollector[I]) observe(row *Row[I]) {
	if c.short.Contains(int(row.contentID)) {
		return
	}
	idx, ok := c.byContent[row.contentID]
	if !ok {
		idx = len(c.classes)
		c.byContent[row.contentID] = idx
		c.classes = append(c.classes, nil)
	}
	c.classes[idx] = append(c.classes[idx], row)
}

func (c *unclosedCollector[I]) result() [][]*Row[I] {
	return c.classes
}

// repairCanonicals restores the canonical-row invariant after row contents
// changed: a canonical row that left its content id is dropped, and every
// id held by a short row gets the first such row as canonical if it has none.
func (t *Table[I, O]) repairCanonicals() {
	for id := range t.store.size() {
		cid := ContentID(id)
		if r, ok := t.store.canonicalRowOf(cid); ok && t.rows[r].contentID != cid {
			t.store.clearCanonical(cid)
		}
	}
	t.shortContents.Clear()
	for _, sid := range t.shortRows {
		row := t.rows[sid]
		t.shortContents.Add(int(row.contentID))
		if _, ok := t.store.canonicalRowOf(row.contentID); !ok {
			t.store.setCanonical(row.contentID, sid)
		}
	}
}
