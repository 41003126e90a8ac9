package testutil

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/hupe1980/lstar/oracle"
	"github.com/hupe1980/lstar/word"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Word returns a random word of length n over alphabet.
func (r *RNG) Word(alphabet *word.Alphabet[string], n int) word.Word[string] {
	r.mu.Lock()
	defer r.mu.Unlock()

	syms := make([]string, n)
	for i := range syms {
		syms[i] = alphabet.Symbol(r.rand.Intn(alphabet.Size()))
	}
	return word.Of(syms...)
}

// Words returns num random words with lengths in [0, maxLen].
func (r *RNG) Words(alphabet *word.Alphabet[string], num, maxLen int) []word.Word[string] {
	out := make([]word.Word[string], num)
	for i := range out {
		out[i] = r.Word(alphabet, r.Intn(maxLen+1))
	}
	return out
}

// Mealy is a complete deterministic Mealy machine over string symbols.
// State 0 is initial.
type Mealy struct {
	alphabet *word.Alphabet[string]
	next     [][]int
	out      [][]string
}

// NewMealy creates a machine with the given number of states. Every
// transition loops on its state with output "-" until it is set.
func NewMealy(alphabet *word.Alphabet[string], states int) *Mealy {
	m := &Mealy{
		alphabet: alphabet.Clone(),
		next:     make([][]int, states),
		out:      make([][]string, states),
	}
	for s := range states {
		m.next[s] = make([]int, alphabet.Size())
		m.out[s] = make([]string, alphabet.Size())
		for i := range alphabet.Size() {
			m.next[s][i] = s
			m.out[s][i] = "-"
		}
	}
	return m
}

// SetTransition sets the successor and output of state on sym.
func (m *Mealy) SetTransition(state int, sym string, next int, output string) {
	idx, ok := m.alphabet.Index(sym)
	if !ok {
		panic("testutil: symbol " + sym + " is not part of the alphabet")
	}
	m.next[state][idx] = next
	m.out[state][idx] = output
}

// Alphabet returns a copy of the input alphabet.
func (m *Mealy) Alphabet() *word.Alphabet[string] { return m.alphabet.Clone() }

// Size returns the number of states.
func (m *Mealy) Size() int { return len(m.next) }

// State returns the state reached on w.
func (m *Mealy) State(w word.Word[string]) int {
	s := 0
	for _, sym := range w.All() {
		idx, _ := m.alphabet.Index(sym)
		s = m.next[s][idx]
	}
	return s
}

// Output runs prefix silently and returns the outputs produced for suffix,
// joined by spaces.
func (m *Mealy) Output(prefix, suffix word.Word[string]) string {
	s := m.State(prefix)
	outs := make([]string, 0, suffix.Len())
	for _, sym := range suffix.All() {
		idx, _ := m.alphabet.Index(sym)
		outs = append(outs, m.out[s][idx])
		s = m.next[s][idx]
	}
	return strings.Join(outs, " ")
}

// Answer implements oracle.Answerer.
func (m *Mealy) Answer(_ context.Context, prefix, suffix word.Word[string]) (string, error) {
	return m.Output(prefix, suffix), nil
}

// Oracle returns a sequential membership oracle for m.
func (m *Mealy) Oracle() oracle.MembershipOracle[string, string] {
	return oracle.NewAnswererOracle[string, string](m)
}

// RandomMealy generates a machine with the given number of states whose
// outputs are drawn from outputs. Every state is reachable.
func (r *RNG) RandomMealy(alphabet *word.Alphabet[string], states int, outputs []string) *Mealy {
	m := NewMealy(alphabet, states)

	r.mu.Lock()
	defer r.mu.Unlock()

	for s := range states {
		for i := range alphabet.Size() {
			m.next[s][i] = r.rand.Intn(states)
			m.out[s][i] = outputs[r.rand.Intn(len(outputs))]
		}
	}
	// Spanning tree over transitions in (state, symbol) order.
	k := alphabet.Size()
	for s := 1; s < states; s++ {
		m.next[(s-1)/k][(s-1)%k] = s
	}
	return m
}

// LanguageOracle answers a query with accept(prefix·suffix).
func LanguageOracle[I comparable](accept func(w word.Word[I]) bool) oracle.MembershipOracle[I, bool] {
	return oracle.NewAnswererOracle[I, bool](oracle.AnswererFunc[I, bool](
		func(_ context.Context, prefix, suffix word.Word[I]) (bool, error) {
			return accept(prefix.Concat(suffix)), nil
		},
	))
}

// Words parses space-separated symbols into a word. "" is the empty word.
func Words(s ...string) []word.Word[string] {
	out := make([]word.Word[string], len(s))
	for i, w := range s {
		out[i] = W(w)
	}
	return out
}

// W parses space-separated symbols into a word. "" is the empty word.
func W(s string) word.Word[string] {
	if s == "" {
		return word.Empty[string]()
	}
	return word.Of(strings.Fields(s)...)
}
