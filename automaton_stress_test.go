package automatonx_test

import (
	"strconv"
	"sync"
	"testing"

	. "github.com/comalice/automatonx"
	"github.com/comalice/automatonx/testutil"
)

// Shared automata are read-only, so concurrent callers need no locking.
// Run with -race.
func TestConcurrentOperationsOnSharedAutomaton(t *testing.T) {
	nfa := testutil.RandomNFA(42, 8, 3, 0.25)

	wantDFA, err := Determinize(nfa)
	if err != nil {
		t.Fatal(err)
	}
	wantGrammar := ToRegularGrammar(nfa).String()
	wantDet := IsDeterministic(nfa)
	words := testutil.AllWords(nfa.Alphabet(), 4)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan string, workers*4)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				dfa, err := Determinize(nfa)
				if err != nil {
					errs <- err.Error()
					return
				}
				if dfa.String() != wantDFA.String() {
					errs <- "determinize result differs between calls"
					return
				}
				if ToRegularGrammar(nfa).String() != wantGrammar {
					errs <- "grammar differs between calls"
					return
				}
				if IsDeterministic(nfa) != wantDet {
					errs <- "classification differs between calls"
					return
				}
				for _, w := range words {
					if nfa.Accepts(w) != dfa.Accepts(w) {
						errs <- "acceptance differs"
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestDeterminizeLargeNFA(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large automaton in short mode")
	}
	// "The n-th symbol from the end is a" needs 2^n DFA states.
	const n = 10
	b := NewBuilder("s0")
	b.State("s0").On("a", "s0", "s1").On("b", "s0")
	for i := 1; i < n; i++ {
		b.State(stateN(i)).On("a", stateN(i+1)).On("b", stateN(i+1))
	}
	b.State(stateN(n)).Accept()
	nfa, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	dfa, err := Determinize(nfa, WithNameSeparator(","))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(dfa.States()), 1<<n; got != want {
		t.Errorf("expected %d states, got %d", want, got)
	}
	if !IsDeterministic(dfa) {
		t.Error("result not deterministic")
	}
}

func stateN(i int) State {
	return State("s" + strconv.Itoa(i))
}
