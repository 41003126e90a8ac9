package lstar

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hupe1980/lstar/oracle"
	"github.com/hupe1980/lstar/table"
	"github.com/hupe1980/lstar/testutil"
	"github.com/hupe1980/lstar/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lengthMod answers with the length of the input word modulo n.
func lengthMod(n int) oracle.MembershipOracle[string, int] {
	return oracle.Func[string, int](func(_ context.Context, qs []oracle.Query[string]) ([]int, error) {
		out := make([]int, len(qs))
		for i, q := range qs {
			out[i] = q.Input().Len() % n
		}
		return out, nil
	})
}

// hypothesisOutput runs w through the Mealy hypothesis of a closed and
// consistent table whose suffixes include every single symbol.
func hypothesisOutput(t *testing.T, tbl *table.Table[string, string], w word.Word[string]) string {
	t.Helper()

	cols := make(map[string]int)
	for i, s := range tbl.Suffixes() {
		cols[s.String()] = i
	}

	root, ok := tbl.RowByLabel(word.Empty[string]())
	require.True(t, ok)
	cur, ok := tbl.CanonicalRow(root.ContentID())
	require.True(t, ok)

	outs := make([]string, 0, w.Len())
	for _, sym := range w.All() {
		col, ok := cols[sym]
		require.True(t, ok)
		out, err := tbl.CellContents(cur, col)
		require.NoError(t, err)
		outs = append(outs, out)

		next, err := tbl.RowSuccessor(cur, sym)
		require.NoError(t, err)
		cur, ok = tbl.CanonicalRow(next.ContentID())
		require.True(t, ok)
	}
	return strings.Join(outs, " ")
}

// allWords enumerates every word over alphabet up to length n.
func allWords(alphabet *word.Alphabet[string], n int) []word.Word[string] {
	out := []word.Word[string]{word.Empty[string]()}
	layer := out
	for range n {
		var next []word.Word[string]
		for _, w := range layer {
			for _, sym := range alphabet.Symbols() {
				next = append(next, w.Append(sym))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

func singleSymbols(alphabet *word.Alphabet[string]) []word.Word[string] {
	out := make([]word.Word[string], alphabet.Size())
	for i, sym := range alphabet.Symbols() {
		out[i] = word.Of(sym)
	}
	return out
}

func TestLearnerLearnsMealy(t *testing.T) {
	ctx := context.Background()
	alphabet := word.NewAlphabet("a", "b")

	for seed := int64(1); seed <= 5; seed++ {
		m := testutil.NewRNG(seed).RandomMealy(alphabet, 5, []string{"0", "1"})

		l, err := New(alphabet, m.Oracle())
		require.NoError(t, err)
		require.NoError(t, l.Start(ctx, singleSymbols(alphabet)...))

		tbl := l.Table()
		for i := 0; ; i++ {
			require.Less(t, i, 20, "seed %d did not converge", seed)
			require.True(t, tbl.IsClosed())
			require.True(t, tbl.IsConsistent())

			var cex word.Word[string]
			found := false
			for _, w := range allWords(alphabet, 6) {
				if hypothesisOutput(t, tbl, w) != m.Output(word.Empty[string](), w) {
					cex, found = w, true
					break
				}
			}
			if !found {
				break
			}

			suffixes := make([]word.Word[string], 0, cex.Len())
			for k := 1; k <= cex.Len(); k++ {
				suffixes = append(suffixes, cex.Suffix(k))
			}
			require.NoError(t, l.AddSuffixes(ctx, suffixes...))
		}

		assert.LessOrEqual(t, tbl.NumShortRows(), m.Size())
		assert.Positive(t, l.Queries())
	}
}

func TestLearnerRounds(t *testing.T) {
	ctx := context.Background()
	alphabet := word.NewAlphabet("a")

	t.Run("Converges", func(t *testing.T) {
		metrics := &BasicMetricsCollector{}
		l, err := New(alphabet, lengthMod(4), WithMetricsCollector(metrics))
		require.NoError(t, err)
		require.NoError(t, l.Start(ctx))

		assert.Equal(t, 3, l.Rounds())
		assert.Equal(t, 4, l.Table().NumShortRows())
		assert.Equal(t, int64(5), l.Queries())
		assert.Equal(t, int64(4), l.Batches())

		stats := metrics.GetStats()
		assert.Equal(t, int64(5), stats.QueryCount)
		assert.Equal(t, int64(4), stats.BatchCount)
		assert.Equal(t, int64(0), stats.BatchErrors)
		assert.Equal(t, int64(3), stats.PromotedRows)
		assert.Equal(t, int64(3), stats.RoundCount)
		assert.Equal(t, int64(1), stats.AddedSuffixes)
	})

	t.Run("Limit", func(t *testing.T) {
		l, err := New(alphabet, lengthMod(4), WithMaxRounds(1))
		require.NoError(t, err)

		err = l.Start(ctx)
		require.ErrorIs(t, err, ErrRoundLimit)
		var limit *ErrRoundLimitExceeded
		require.ErrorAs(t, err, &limit)
		assert.Equal(t, 1, limit.Limit)
		assert.Equal(t, 1, l.Rounds())
		assert.False(t, l.Table().IsClosed())

		// Each refinement gets its own budget.
		require.ErrorIs(t, l.Refine(ctx), ErrRoundLimit)
		assert.Equal(t, 2, l.Rounds())
		require.NoError(t, l.Refine(ctx))
		assert.Equal(t, 3, l.Rounds())
		assert.True(t, l.Table().IsClosed())
	})

	t.Run("Canceled", func(t *testing.T) {
		l, err := New(alphabet, lengthMod(4))
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, l.Start(cctx), context.Canceled)
	})
}

func TestLearnerConsistency(t *testing.T) {
	ctx := context.Background()
	alphabet := word.NewAlphabet("a", "b")
	mo := testutil.LanguageOracle(func(w word.Word[string]) bool {
		return w.Equal(testutil.W("a b"))
	})

	t.Run("Enabled", func(t *testing.T) {
		l, err := New(alphabet, mo)
		require.NoError(t, err)
		require.NoError(t, l.Start(ctx))
		assert.Equal(t, 0, l.Rounds())

		require.NoError(t, l.AddShortPrefixes(ctx, testutil.W("a")))

		tbl := l.Table()
		assert.True(t, tbl.IsClosed())
		assert.True(t, tbl.IsConsistent())

		var suffixes []string
		for _, s := range tbl.Suffixes() {
			suffixes = append(suffixes, s.String())
		}
		assert.Equal(t, []string{"ε", "b"}, suffixes)
	})

	t.Run("Disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CheckConsistency = false

		l, err := New(alphabet, mo, WithConfig(cfg))
		require.NoError(t, err)
		require.NoError(t, l.Start(ctx))
		require.NoError(t, l.AddShortPrefixes(ctx, testutil.W("a")))

		assert.True(t, l.Table().IsClosed())
		assert.False(t, l.Table().IsConsistent())
	})
}

func TestLearnerAddAlphabetSymbol(t *testing.T) {
	ctx := context.Background()
	full := word.NewAlphabet("a", "b")
	m := testutil.NewRNG(7).RandomMealy(full, 4, []string{"x", "y"})

	l, err := New(word.NewAlphabet("a"), m.Oracle())
	require.NoError(t, err)
	require.NoError(t, l.Start(ctx, testutil.W("a")))

	batches := l.Batches()
	require.NoError(t, l.AddAlphabetSymbol(ctx, "a"))
	assert.Equal(t, batches, l.Batches())

	require.NoError(t, l.AddAlphabetSymbol(ctx, "b"))
	require.NoError(t, l.AddSuffixes(ctx, testutil.W("b")))

	tbl := l.Table()
	assert.Equal(t, 2, tbl.Alphabet().Size())
	assert.True(t, tbl.IsClosed())
	assert.True(t, tbl.IsConsistent())
	for _, r := range tbl.ShortRows() {
		_, err := tbl.RowSuccessor(r, "b")
		require.NoError(t, err)
	}
}

func TestLearnerErrors(t *testing.T) {
	ctx := context.Background()
	alphabet := word.NewAlphabet("a")

	_, err := New[string, int](nil, lengthMod(2))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New[string, int](alphabet, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(alphabet, lengthMod(2), WithClosingStrategy(ClosingStrategy(7)))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(alphabet, lengthMod(2), WithMaxRounds(-1))
	require.ErrorIs(t, err, ErrInvalidArgument)

	l, err := New(alphabet, lengthMod(2))
	require.NoError(t, err)
	require.ErrorIs(t, l.Refine(ctx), ErrInvalidState)
	require.ErrorIs(t, l.AddAlphabetSymbol(ctx, "b"), ErrInvalidState)
	require.ErrorIs(t, l.AddSuffixes(ctx, testutil.W("a")), ErrInvalidState)

	require.NoError(t, l.Start(ctx))
	require.ErrorIs(t, l.Start(ctx), ErrInvalidState)
	require.ErrorIs(t, l.AddSuffixes(ctx, testutil.W("c")), ErrInvalidArgument)

	t.Run("BatchSize", func(t *testing.T) {
		short := oracle.Func[string, int](func(context.Context, []oracle.Query[string]) ([]int, error) {
			return []int{0}, nil
		})
		l, err := New(word.NewAlphabet("a", "b"), short)
		require.NoError(t, err)

		err = l.Start(ctx)
		require.ErrorIs(t, err, ErrAnswerCount)
		var bs *ErrBatchSize
		require.ErrorAs(t, err, &bs)
		assert.Equal(t, 3, bs.Expected)
		assert.Equal(t, 1, bs.Actual)
	})

	t.Run("OracleFailure", func(t *testing.T) {
		boom := errors.New("boom")
		failing := oracle.Func[string, int](func(context.Context, []oracle.Query[string]) ([]int, error) {
			return nil, boom
		})
		metrics := &BasicMetricsCollector{}
		l, err := New(alphabet, failing, WithMetricsCollector(metrics))
		require.NoError(t, err)

		require.ErrorIs(t, l.Start(ctx), boom)
		assert.Equal(t, int64(1), metrics.GetStats().BatchErrors)
		assert.False(t, l.Table().IsInitialized())
	})
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, translateError(plain))

	conflict := &oracle.AnswerConflictError{Query: "(a | b)", Recorded: 1, Got: 2}
	err := translateError(conflict)
	var mm *ErrAnswerMismatch
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, "(a | b)", mm.Query)
	assert.Equal(t, 1, mm.Recorded)
	assert.Equal(t, 2, mm.Got)
	assert.ErrorIs(t, err, ErrAnswerConflict)
	assert.Same(t, conflict, errors.Unwrap(err))
}

func TestSelectRows(t *testing.T) {
	ctx := context.Background()
	endsInC := oracle.Func[string, int](func(_ context.Context, qs []oracle.Query[string]) ([]int, error) {
		out := make([]int, len(qs))
		for i, q := range qs {
			in := q.Input()
			if !in.IsEmpty() && in.At(in.Len()-1) == "c" {
				out[i] = 1
			}
		}
		return out, nil
	})

	tbl := table.New[string, int](word.NewAlphabet("a", "b", "c"))
	_, err := tbl.Initialize(ctx, testutil.Words("", "a"), testutil.Words(""), endsInC)
	require.NoError(t, err)

	b, _ := tbl.RowByLabel(testutil.W("b"))
	classes, err := tbl.ToShortPrefixes(ctx, []*table.Row[string]{b}, endsInC)
	require.NoError(t, err)
	require.Len(t, classes, 1)

	classes = tbl.UnclosedClasses()
	require.Len(t, classes, 1)
	require.Equal(t, "a c", classes[0][0].Label().String())

	assert.Equal(t, "a c", selectRows(CloseFirst, classes)[0].Label().String())
	assert.Equal(t, "c", selectRows(CloseShortest, classes)[0].Label().String())
	assert.Equal(t, "shortest", CloseShortest.String())
	assert.Equal(t, "ClosingStrategy(7)", ClosingStrategy(7).String())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l, err := New(word.NewAlphabet("a"), lengthMod(3), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, l.Start(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "learner started")
	assert.Contains(t, out, "unclosed rows promoted")
	assert.Contains(t, out, "table closed and consistent")
	assert.Contains(t, out, "observation table initialized")
}
