package automatonx_test

import (
	"testing"

	. "github.com/comalice/automatonx"
	"github.com/comalice/automatonx/testutil"
)

func TestIsDeterministicLabNFA(t *testing.T) {
	if IsDeterministic(testutil.LabNFA()) {
		t.Error("q0 has two destinations on a, expected non-deterministic")
	}
}

// No transitions at all is vacuously deterministic.
func TestIsDeterministicNoTransitions(t *testing.T) {
	a, err := NewAutomaton([]State{"s0", "s1"}, []Symbol{"a"}, nil, "s0", []State{"s1"})
	if err != nil {
		t.Fatal(err)
	}
	if !IsDeterministic(a) {
		t.Error("automaton without transitions should be deterministic")
	}
}

func TestIsDeterministicPartialDFA(t *testing.T) {
	a, err := NewBuilder("q0").
		State("q0").On("a", "q1").
		State("q1").On("b", "q0").Accept().
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if !IsDeterministic(a) {
		t.Error("missing transitions must not break determinism")
	}
}

func TestIsDeterministicRemovingTransitionPreserves(t *testing.T) {
	dfa, err := Determinize(testutil.LabNFA())
	if err != nil {
		t.Fatal(err)
	}
	all := dfa.Transitions()
	for skip := range all {
		var kept []Transition
		for i, tr := range all {
			if i != skip {
				kept = append(kept, tr)
			}
		}
		a, err := NewAutomaton(dfa.States(), dfa.Alphabet(), kept, dfa.Start(), dfa.AcceptStates())
		if err != nil {
			t.Fatal(err)
		}
		if !IsDeterministic(a) {
			t.Errorf("removing transition %d made automaton non-deterministic", skip)
		}
	}
}

func TestIsDeterministicSecondTargetBreaks(t *testing.T) {
	dfa, err := Determinize(testutil.LabNFA())
	if err != nil {
		t.Fatal(err)
	}
	states := dfa.States()
	for i, tr := range dfa.Transitions() {
		// Pick any state other than the current target as the extra branch.
		extra := states[0]
		if extra == tr.To[0] {
			extra = states[1]
		}
		trans := append(dfa.Transitions(), Transition{From: tr.From, Symbol: tr.Symbol, To: []State{extra}})
		a, err := NewAutomaton(states, dfa.Alphabet(), trans, dfa.Start(), dfa.AcceptStates())
		if err != nil {
			t.Fatal(err)
		}
		if IsDeterministic(a) {
			t.Errorf("transition %d: second destination should make automaton non-deterministic", i)
		}
	}
}
