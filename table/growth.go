package table

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/lstar/internal/bitmap"
	"github.com/hupe1980/lstar/oracle"
	"github.com/hupe1980/lstar/word"
)

// Initialize fills an empty table with the given short prefixes and suffixes.
//
// shortPrefixes must be prefix-closed and start with the empty word. Every
// missing one-symbol extension of a short prefix becomes a long row, and all
// cells are answered in a single batch. Short rows are assigned contents
// first so they seed the canonical rows.
//
// The result lists the equivalence classes of unclosed long rows; it is
// empty iff the table is closed.
func (t *Table[I, O]) Initialize(ctx context.Context, shortPrefixes, suffixes []word.Word[I], mo oracle.MembershipOracle[I, O]) ([][]*Row[I], error) {
	if t.IsInitialized() {
		return nil, fmt.Errorf("%w: called Initialize, but there are already rows present", ErrInvalidState)
	}
	if len(shortPrefixes) == 0 || !shortPrefixes[0].IsEmpty() {
		return nil, fmt.Errorf("%w: first initial short prefix must be the empty word", ErrInvalidArgument)
	}
	if err := t.checkWords(shortPrefixes); err != nil {
		return nil, err
	}
	if err := t.checkWords(suffixes); err != nil {
		return nil, err
	}
	if !t.prefixClosed(shortPrefixes) {
		return nil, fmt.Errorf("%w: initial short prefixes are not prefix-closed", ErrInvalidArgument)
	}

	newSuffixes := t.freshSuffixes(suffixes)

	p := t.newPlan()
	var spIDs []RowID
	for _, sp := range shortPrefixes {
		if _, ok := p.lookup(sp); ok {
			continue
		}
		spIDs = append(spIDs, p.add(sp, true))
	}

	var lpIDs []RowID
	succ := make([][]RowID, len(spIDs))
	for k, id := range spIDs {
		succ[k], lpIDs = p.linkSuccessors(p.label(id), lpIDs)
	}

	queries := make([]oracle.Query[I], 0, (len(spIDs)+len(lpIDs))*len(newSuffixes))
	for _, id := range spIDs {
		queries = appendQueries(queries, p.label(id), newSuffixes)
	}
	for _, id := range lpIDs {
		queries = appendQueries(queries, p.label(id), newSuffixes)
	}

	answers, err := t.ask(ctx, mo, queries)
	if err != nil {
		return nil, err
	}

	t.registerSuffixes(newSuffixes)
	p.commit()

	n := len(newSuffixes)
	next := func() []O {
		vec := slices.Clone(answers[:n])
		answers = answers[n:]
		return vec
	}

	for k, id := range spIDs {
		row := t.rows[id]
		copy(row.successors, succ[k])
		if !t.assignContents(row, next()) {
			t.initialConsistencyCheckRequired = true
		}
	}

	unclosed := newUnclosedCollector[I](t.shortContents)
	for _, id := range lpIDs {
		row := t.rows[id]
		t.assignContents(row, next())
		unclosed.observe(row)
	}

	t.logger.Debug("observation table initialized",
		"short_rows", len(spIDs),
		"long_rows", len(lpIDs),
		"suffixes", n,
		"queries", len(queries),
		"unclosed_classes", len(unclosed.result()),
	)

	return unclosed.result(), nil
}

// AddSuffix adds a single suffix. See AddSuffixes.
func (t *Table[I, O]) AddSuffix(ctx context.Context, suffix word.Word[I], mo oracle.MembershipOracle[I, O]) ([][]*Row[I], error) {
	return t.AddSuffixes(ctx, []word.Word[I]{suffix}, mo)
}

// AddSuffixes appends the given suffixes that are not columns yet, in the
// given order, and answers the new cells of every row in one batch.
//
// Row contents are extended copy-on-write: the first row processed for a
// content id extends the registered vector in place and keeps the id; later
// rows with the same old id re-intern a fresh vector, keeping the id only if
// their extension matches. Existing content ids are never removed or
// renumbered.
//
// The result lists the equivalence classes of unclosed long rows.
func (t *Table[I, O]) AddSuffixes(ctx context.Context, suffixes []word.Word[I], mo oracle.MembershipOracle[I, O]) ([][]*Row[I], error) {
	if !t.IsInitialized() {
		return nil, fmt.Errorf("%w: table is not initialized", ErrInvalidState)
	}
	if err := t.checkWords(suffixes); err != nil {
		return nil, err
	}

	newSuffixes := t.freshSuffixes(suffixes)
	if len(newSuffixes) == 0 {
		return nil, nil
	}

	queries := make([]oracle.Query[I], 0, len(t.rows)*len(newSuffixes))
	for _, id := range t.shortRows {
		queries = appendQueries(queries, t.rows[id].label, newSuffixes)
	}
	for _, id := range t.longRows {
		queries = appendQueries(queries, t.rows[id].label, newSuffixes)
	}

	answers, err := t.ask(ctx, mo, queries)
	if err != nil {
		return nil, err
	}

	oldCount := len(t.suffixes)
	n := len(newSuffixes)
	claimed := bitmap.New()

	extend := func(row *Row[I]) error {
		vals := answers[:n]
		answers = answers[n:]

		cid := row.contentID
		if !claimed.Contains(int(cid)) {
			claimed.Add(int(cid))
			return t.store.extend(cid, vals)
		}

		vec := make([]O, 0, oldCount+n)
		vec = append(vec, t.store.contentOf(cid)[:oldCount]...)
		vec = append(vec, vals...)
		row.contentID, _ = t.store.intern(vec, row.id, row.IsShort())
		return nil
	}

	for _, id := range t.shortRows {
		if err := extend(t.rows[id]); err != nil {
			return nil, err
		}
	}
	for _, id := range t.longRows {
		if err := extend(t.rows[id]); err != nil {
			return nil, err
		}
	}

	t.registerSuffixes(newSuffixes)
	t.repairCanonicals()

	unclosed := t.UnclosedClasses()

	t.logger.Debug("suffixes added",
		"suffixes", n,
		"total_suffixes", len(t.suffixes),
		"queries", len(queries),
		"distinct_contents", t.store.size(),
		"unclosed_classes", len(unclosed),
	)

	return unclosed, nil
}

// AddShortPrefixes makes the given prefixes short. Prefixes that label a
// long row promote it, unknown prefixes become new short rows, and prefixes
// that are already short are skipped. See ToShortPrefixes.
func (t *Table[I, O]) AddShortPrefixes(ctx context.Context, prefixes []word.Word[I], mo oracle.MembershipOracle[I, O]) ([][]*Row[I], error) {
	if !t.IsInitialized() {
		return nil, fmt.Errorf("%w: table is not initialized", ErrInvalidState)
	}
	if err := t.checkWords(prefixes); err != nil {
		return nil, err
	}

	p := t.newPlan()
	var (
		promote []*Row[I]
		fresh   []RowID
	)
	for _, sp := range prefixes {
		if row, ok := t.RowByLabel(sp); ok {
			if !row.IsShort() {
				promote = append(promote, row)
			}
			continue
		}
		if _, ok := p.lookup(sp); ok {
			continue
		}
		fresh = append(fresh, p.add(sp, true))
	}

	return t.promote(ctx, mo, promote, p, fresh)
}

// ToShortPrefixes moves the given rows to the set of short prefix rows.
// Rows that are already short are ignored. Every missing one-symbol
// extension of a promoted row becomes a new long row; only the new rows are
// queried.
//
// The result lists the equivalence classes of unclosed rows among the newly
// created long rows.
func (t *Table[I, O]) ToShortPrefixes(ctx context.Context, rows []*Row[I], mo oracle.MembershipOracle[I, O]) ([][]*Row[I], error) {
	if !t.IsInitialized() {
		return nil, fmt.Errorf("%w: table is not initialized", ErrInvalidState)
	}
	for _, row := range rows {
		if !t.owns(row) {
			return nil, fmt.Errorf("%w: row is not part of this table", ErrInvalidArgument)
		}
	}
	return t.promote(ctx, mo, rows, t.newPlan(), nil)
}

func (t *Table[I, O]) promote(ctx context.Context, mo oracle.MembershipOracle[I, O], rows []*Row[I], p *growthPlan[I, O], freshSp []RowID) ([][]*Row[I], error) {
	var promoted []*Row[I]
	seen := make(map[RowID]struct{}, len(rows))
	for _, row := range rows {
		if row.IsShort() {
			continue
		}
		if _, dup := seen[row.id]; dup {
			continue
		}
		seen[row.id] = struct{}{}
		promoted = append(promoted, row)
	}
	if len(promoted) == 0 && len(freshSp) == 0 {
		return nil, nil
	}

	newShort := make([]RowID, 0, len(promoted)+len(freshSp))
	for _, row := range promoted {
		newShort = append(newShort, row.id)
	}
	newShort = append(newShort, freshSp...)

	var freshLp []RowID
	succ := make([][]RowID, len(newShort))
	for k, id := range newShort {
		succ[k], freshLp = p.linkSuccessors(p.label(id), freshLp)
	}

	queries := make([]oracle.Query[I], 0, (len(freshSp)+len(freshLp))*len(t.suffixes))
	for _, id := range freshSp {
		queries = appendQueries(queries, p.label(id), t.suffixes)
	}
	for _, id := range freshLp {
		queries = appendQueries(queries, p.label(id), t.suffixes)
	}

	answers, err := t.ask(ctx, mo, queries)
	if err != nil {
		return nil, err
	}

	for _, row := range promoted {
		t.makeShort(row)
	}
	p.commit()

	n := len(t.suffixes)
	next := func() []O {
		vec := slices.Clone(answers[:n])
		answers = answers[n:]
		return vec
	}

	for k, id := range newShort {
		copy(t.rows[id].successors, succ[k])
	}
	for _, id := range freshSp {
		t.assignContents(t.rows[id], next())
	}

	unclosed := newUnclosedCollector[I](t.shortContents)
	for _, id := range freshLp {
		row := t.rows[id]
		t.assignContents(row, next())
		unclosed.observe(row)
	}

	t.logger.Debug("short prefixes added",
		"promoted", len(promoted),
		"new_short_rows", len(freshSp),
		"new_long_rows", len(freshLp),
		"queries", len(queries),
		"unclosed_classes", len(unclosed.result()),
	)

	return unclosed.result(), nil
}

// AddAlphabetSymbol extends the alphabet by sym. Every short row gains a
// successor slot and a new long row for its sym-extension; only these rows
// are queried. Adding a symbol that is already present is a no-op.
//
// Every new long row whose contents no short row holds is reported as its
// own singleton class.
func (t *Table[I, O]) AddAlphabetSymbol(ctx context.Context, sym I, mo oracle.MembershipOracle[I, O]) ([][]*Row[I], error) {
	if t.alphabet.Contains(sym) {
		return nil, nil
	}
	if !t.IsInitialized() {
		t.alphabet.Add(sym)
		return nil, nil
	}

	p := t.newPlan()
	lpIDs := make([]RowID, len(t.shortRows))
	for k, id := range t.shortRows {
		lpIDs[k] = p.add(t.rows[id].label.Append(sym), false)
	}

	queries := make([]oracle.Query[I], 0, len(lpIDs)*len(t.suffixes))
	for _, id := range lpIDs {
		queries = appendQueries(queries, p.label(id), t.suffixes)
	}

	answers, err := t.ask(ctx, mo, queries)
	if err != nil {
		return nil, err
	}

	symIdx, _ := t.alphabet.Add(sym)
	p.commit()

	n := len(t.suffixes)
	var unclosed [][]*Row[I]
	for k, id := range t.shortRows {
		sp := t.rows[id]
		sp.ensureInputCapacity(t.alphabet.Size())
		sp.successors[symIdx] = lpIDs[k]

		row := t.rows[lpIDs[k]]
		t.assignContents(row, slices.Clone(answers[:n]))
		answers = answers[n:]
		if !t.shortContents.Contains(int(row.contentID)) {
			unclosed = append(unclosed, []*Row[I]{row})
		}
	}

	t.logger.Debug("alphabet symbol added",
		"symbol", sym,
		"alphabet_size", t.alphabet.Size(),
		"new_long_rows", len(lpIDs),
		"queries", len(queries),
		"unclosed_classes", len(unclosed),
	)

	return unclosed, nil
}

// freshSuffixes returns the suffixes that are not columns yet, without
// duplicates, in the given order.
func (t *Table[I, O]) freshSuffixes(suffixes []word.Word[I]) []word.Word[I] {
	var out []word.Word[I]
	for _, s := range suffixes {
		if _, ok := t.suffixIndex.Lookup(s); ok {
			continue
		}
		if slices.ContainsFunc(out, s.Equal) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (t *Table[I, O]) registerSuffixes(suffixes []word.Word[I]) {
	for _, s := range suffixes {
		t.suffixes = append(t.suffixes, s)
		t.suffixIndex.Insert(s, len(t.suffixes)-1)
	}
}

// checkWords fails if a word contains a symbol outside the alphabet.
func (t *Table[I, O]) checkWords(words []word.Word[I]) error {
	for _, w := range words {
		if !t.alphabet.ContainsWord(w) {
			return fmt.Errorf("%w: word %s contains symbols outside the alphabet", ErrInvalidArgument, w)
		}
	}
	return nil
}

// prefixClosed reports whether every non-empty word's one-shorter prefix is
// part of words as well.
func (t *Table[I, O]) prefixClosed(words []word.Word[I]) bool {
	p := t.newPlan()
	for _, w := range words {
		if _, ok := p.index.Lookup(w); !ok {
			p.add(w, true)
		}
	}
	for _, w := range words {
		if w.IsEmpty() {
			continue
		}
		if _, ok := p.index.Lookup(w.Prefix(w.Len() - 1)); !ok {
			return false
		}
	}
	return true
}
