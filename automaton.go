package automatonx

import (
	"errors"
	"fmt"
	"strings"
)

type State string
type Symbol string

// ErrMalformedAutomaton is returned by NewAutomaton when the supplied sets do
// not describe a valid automaton.
var ErrMalformedAutomaton = errors.New("malformed automaton")

// Transition is one (From, Symbol) entry of the transition relation.
// Several transitions sharing a key contribute to the same destination set.
type Transition struct {
	From   State
	Symbol Symbol
	To     []State
}

type transitionKey struct {
	from   State
	symbol Symbol
}

// Automaton is a finite automaton whose transition relation maps each
// (state, symbol) pair to a set of destinations. It is immutable once built.
type Automaton struct {
	states   []State
	index    map[State]int
	alphabet []Symbol
	symbols  map[Symbol]int
	delta    map[transitionKey][]State
	start    State
	accept   []State
	isAccept map[State]bool
}

//
// Public API
//

// NewAutomaton validates its arguments and builds an Automaton.
// Duplicate labels collapse; the first occurrence fixes enumeration order.
func NewAutomaton(states []State, alphabet []Symbol, transitions []Transition, start State, accept []State) (*Automaton, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no states provided", ErrMalformedAutomaton)
	}
	a := &Automaton{
		index:    make(map[State]int, len(states)),
		symbols:  make(map[Symbol]int, len(alphabet)),
		delta:    make(map[transitionKey][]State),
		isAccept: make(map[State]bool, len(accept)),
	}

	for _, s := range states {
		if s == "" {
			return nil, fmt.Errorf("%w: empty state label", ErrMalformedAutomaton)
		}
		if _, exists := a.index[s]; exists {
			continue
		}
		a.index[s] = len(a.states)
		a.states = append(a.states, s)
	}
	for _, c := range alphabet {
		if c == "" {
			return nil, fmt.Errorf("%w: empty symbol in alphabet", ErrMalformedAutomaton)
		}
		if _, exists := a.symbols[c]; exists {
			continue
		}
		a.symbols[c] = len(a.alphabet)
		a.alphabet = append(a.alphabet, c)
	}

	if !a.HasState(start) {
		return nil, fmt.Errorf("%w: start state %q not in states", ErrMalformedAutomaton, start)
	}
	a.start = start

	for _, s := range accept {
		if !a.HasState(s) {
			return nil, fmt.Errorf("%w: accept state %q not in states", ErrMalformedAutomaton, s)
		}
		if a.isAccept[s] {
			continue
		}
		a.isAccept[s] = true
		a.accept = append(a.accept, s)
	}

	for i, t := range transitions {
		if !a.HasState(t.From) {
			return nil, fmt.Errorf("%w: transition %d: source %q not in states", ErrMalformedAutomaton, i, t.From)
		}
		if !a.HasSymbol(t.Symbol) {
			return nil, fmt.Errorf("%w: transition %d: symbol %q not in alphabet", ErrMalformedAutomaton, i, t.Symbol)
		}
		key := transitionKey{from: t.From, symbol: t.Symbol}
		for _, to := range t.To {
			if !a.HasState(to) {
				return nil, fmt.Errorf("%w: transition %d: target %q not in states", ErrMalformedAutomaton, i, to)
			}
			if !containsState(a.delta[key], to) {
				a.delta[key] = append(a.delta[key], to)
			}
		}
	}

	return a, nil
}

// States returns the declared states in declaration order.
func (a *Automaton) States() []State {
	return append([]State(nil), a.states...)
}

// Alphabet returns the declared symbols in declaration order.
func (a *Automaton) Alphabet() []Symbol {
	return append([]Symbol(nil), a.alphabet...)
}

func (a *Automaton) Start() State {
	return a.start
}

// AcceptStates returns the accepting states in declaration order.
func (a *Automaton) AcceptStates() []State {
	return append([]State(nil), a.accept...)
}

func (a *Automaton) IsAccept(s State) bool {
	return a.isAccept[s]
}

func (a *Automaton) HasState(s State) bool {
	_, ok := a.index[s]
	return ok
}

func (a *Automaton) HasSymbol(c Symbol) bool {
	_, ok := a.symbols[c]
	return ok
}

// Destinations returns the set of states reachable from s on c.
// A missing transition yields an empty slice.
func (a *Automaton) Destinations(s State, c Symbol) []State {
	return append([]State(nil), a.delta[transitionKey{from: s, symbol: c}]...)
}

// Transitions lists the relation grouped by state, then symbol, in declaration order.
func (a *Automaton) Transitions() []Transition {
	var out []Transition
	for _, s := range a.states {
		for _, c := range a.alphabet {
			to := a.delta[transitionKey{from: s, symbol: c}]
			if len(to) == 0 {
				continue
			}
			out = append(out, Transition{From: s, Symbol: c, To: append([]State(nil), to...)})
		}
	}
	return out
}

// Accepts reports whether some path from the start state consumes all of
// word and ends in an accepting state.
func (a *Automaton) Accepts(word []Symbol) bool {
	current := a.singleton(a.start)
	for _, c := range word {
		if !a.HasSymbol(c) {
			return false
		}
		current = a.move(current, c)
		if current.None() {
			return false
		}
	}
	return a.meetsAccept(current)
}

func (a *Automaton) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "states: %s\n", joinStates(a.states, ", "))
	alpha := make([]string, len(a.alphabet))
	for i, c := range a.alphabet {
		alpha[i] = string(c)
	}
	fmt.Fprintf(&sb, "alphabet: %s\n", strings.Join(alpha, ", "))
	fmt.Fprintf(&sb, "start: %s\n", a.start)
	fmt.Fprintf(&sb, "accept: %s\n", joinStates(a.accept, ", "))
	for _, t := range a.Transitions() {
		fmt.Fprintf(&sb, "δ(%s, %s) = {%s}\n", t.From, t.Symbol, joinStates(t.To, ", "))
	}
	return sb.String()
}

// Word splits s into one symbol per rune.
func Word(s string) []Symbol {
	word := make([]Symbol, 0, len(s))
	for _, r := range s {
		word = append(word, Symbol(string(r)))
	}
	return word
}

//
// Helper Functions (internal API)
//

func containsState(states []State, s State) bool {
	for _, x := range states {
		if x == s {
			return true
		}
	}
	return false
}

func joinStates(states []State, sep string) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, sep)
}
