package testutil

import (
	"fmt"
	"math/rand/v2"

	"github.com/comalice/automatonx"
)

// MustBuild panics if err is non-nil. Intended for fixtures only.
func MustBuild(a *automatonx.Automaton, err error) *automatonx.Automaton {
	if err != nil {
		panic(fmt.Sprintf("testutil: build fixture: %v", err))
	}
	return a
}

// LabNFA returns the four-state NFA over {a, b} in which q0 branches to
// both q1 and q2 on a and only q3 accepts.
func LabNFA() *automatonx.Automaton {
	return MustBuild(automatonx.NewAutomaton(
		[]automatonx.State{"q0", "q1", "q2", "q3"},
		[]automatonx.Symbol{"a", "b"},
		[]automatonx.Transition{
			{From: "q0", Symbol: "a", To: []automatonx.State{"q1", "q2"}},
			{From: "q1", Symbol: "b", To: []automatonx.State{"q1"}},
			{From: "q1", Symbol: "a", To: []automatonx.State{"q2"}},
			{From: "q2", Symbol: "a", To: []automatonx.State{"q1"}},
			{From: "q2", Symbol: "b", To: []automatonx.State{"q3"}},
		},
		"q0",
		[]automatonx.State{"q3"},
	))
}

// EndsWithAB returns an NFA over {a, b} accepting words that end in "ab".
func EndsWithAB() *automatonx.Automaton {
	return MustBuild(automatonx.NewBuilder("p").
		State("p").On("a", "p", "q").On("b", "p").
		State("q").On("b", "r").
		State("r").Accept().
		Build())
}

// RandomNFA generates a reproducible automaton with n states and k symbols.
// Each (state, symbol, target) edge is present with probability density.
func RandomNFA(seed uint64, n, k int, density float64) *automatonx.Automaton {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	states := make([]automatonx.State, n)
	for i := range states {
		states[i] = automatonx.State(fmt.Sprintf("s%d", i))
	}
	alphabet := make([]automatonx.Symbol, k)
	for i := range alphabet {
		alphabet[i] = automatonx.Symbol(string(rune('a' + i)))
	}

	var transitions []automatonx.Transition
	for _, s := range states {
		for _, c := range alphabet {
			var to []automatonx.State
			for _, d := range states {
				if r.Float64() < density {
					to = append(to, d)
				}
			}
			if len(to) > 0 {
				transitions = append(transitions, automatonx.Transition{From: s, Symbol: c, To: to})
			}
		}
	}

	var accept []automatonx.State
	for _, s := range states {
		if r.IntN(3) == 0 {
			accept = append(accept, s)
		}
	}

	return MustBuild(automatonx.NewAutomaton(states, alphabet, transitions, states[0], accept))
}

// AllWords lists every word over alphabet with length at most maxLen,
// shortest first.
func AllWords(alphabet []automatonx.Symbol, maxLen int) [][]automatonx.Symbol {
	words := [][]automatonx.Symbol{{}}
	level := [][]automatonx.Symbol{{}}
	for l := 0; l < maxLen; l++ {
		var next [][]automatonx.Symbol
		for _, w := range level {
			for _, c := range alphabet {
				ext := append(append([]automatonx.Symbol{}, w...), c)
				next = append(next, ext)
			}
		}
		words = append(words, next...)
		level = next
	}
	return words
}

// SameLanguage compares the acceptance of a and b on every word up to maxLen
// and returns the first word they disagree on.
func SameLanguage(a, b *automatonx.Automaton, maxLen int) ([]automatonx.Symbol, bool) {
	for _, w := range AllWords(a.Alphabet(), maxLen) {
		if a.Accepts(w) != b.Accepts(w) {
			return w, false
		}
	}
	return nil, true
}
