package automatonx

import (
	"fmt"
	"strings"
)

// Production is the right-hand side of a right-regular rule: either a
// terminal followed by a nonterminal, or the empty string.
type Production struct {
	Symbol  Symbol
	Next    State
	Epsilon bool
}

// EpsilonProduction is the empty-string production.
var EpsilonProduction = Production{Epsilon: true}

func (p Production) String() string {
	if p.Epsilon {
		return "ε"
	}
	return string(p.Symbol) + " " + string(p.Next)
}

// Grammar is a right-regular grammar whose nonterminals are automaton states.
// It is a read-only view computed by ToRegularGrammar.
type Grammar struct {
	start        State
	nonterminals []State
	terminals    []Symbol
	productions  map[State][]Production
}

// ToRegularGrammar derives the right-regular grammar equivalent to a.
// Each transition (s, c) -> d becomes s -> c d and each accept state s gets
// exactly one s -> ε. Productions are listed in state, symbol, then
// destination order.
func ToRegularGrammar(a *Automaton) *Grammar {
	g := &Grammar{
		start:        a.start,
		nonterminals: a.States(),
		terminals:    a.Alphabet(),
		productions:  make(map[State][]Production, len(a.states)),
	}
	for _, s := range a.states {
		prods := []Production{}
		for _, c := range a.alphabet {
			for _, d := range a.delta[transitionKey{from: s, symbol: c}] {
				prods = appendProduction(prods, Production{Symbol: c, Next: d})
			}
		}
		if a.isAccept[s] {
			prods = appendProduction(prods, EpsilonProduction)
		}
		g.productions[s] = prods
	}
	return g
}

func (g *Grammar) Start() State {
	return g.start
}

func (g *Grammar) Nonterminals() []State {
	return append([]State(nil), g.nonterminals...)
}

func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.terminals...)
}

// Productions returns the alternatives for nonterminal nt.
func (g *Grammar) Productions(nt State) []Production {
	return append([]Production(nil), g.productions[nt]...)
}

// String renders one "lhs -> rhs | rhs" line per nonterminal that has productions.
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, nt := range g.nonterminals {
		prods := g.productions[nt]
		if len(prods) == 0 {
			continue
		}
		rhs := make([]string, len(prods))
		for i, p := range prods {
			rhs[i] = p.String()
		}
		fmt.Fprintf(&sb, "%s -> %s\n", nt, strings.Join(rhs, " | "))
	}
	return sb.String()
}

// ToAutomaton rebuilds the automaton described by g: s -> c d becomes the
// transition (s, c) -> d and s -> ε marks s accepting.
func (g *Grammar) ToAutomaton() (*Automaton, error) {
	var (
		transitions []Transition
		accept      []State
	)
	for _, nt := range g.nonterminals {
		for _, p := range g.productions[nt] {
			if p.Epsilon {
				accept = append(accept, nt)
				continue
			}
			transitions = append(transitions, Transition{From: nt, Symbol: p.Symbol, To: []State{p.Next}})
		}
	}
	return NewAutomaton(g.nonterminals, g.terminals, transitions, g.start, accept)
}

// Words enumerates every terminal word derivable from the start symbol with
// at most maxLen symbols, shortest first.
func (g *Grammar) Words(maxLen int) [][]Symbol {
	type sentential struct {
		prefix []Symbol
		nt     State
	}

	var words [][]Symbol
	emitted := make(map[string]bool)
	seen := make(map[string]bool)

	level := []sentential{{nt: g.start}}
	for length := 0; length <= maxLen && len(level) > 0; length++ {
		var next []sentential
		for _, form := range level {
			for _, p := range g.productions[form.nt] {
				if p.Epsilon {
					key := wordKey(form.prefix)
					if !emitted[key] {
						emitted[key] = true
						words = append(words, append([]Symbol{}, form.prefix...))
					}
					continue
				}
				if length == maxLen {
					continue
				}
				prefix := append(append([]Symbol{}, form.prefix...), p.Symbol)
				key := wordKey(prefix) + "\x00" + string(p.Next)
				if seen[key] {
					continue
				}
				seen[key] = true
				next = append(next, sentential{prefix: prefix, nt: p.Next})
			}
		}
		level = next
	}
	return words
}

// Reduce returns an equivalent grammar without useless nonterminals.
// Unproductive nonterminals, which derive no terminal word, are dropped
// first; nonterminals no longer reachable from the start symbol go next.
// The start symbol is always kept, even when the language is empty.
// Terminals are left unchanged.
func (g *Grammar) Reduce() *Grammar {
	productive := make(map[State]bool)
	for changed := true; changed; {
		changed = false
		for _, nt := range g.nonterminals {
			if productive[nt] {
				continue
			}
			for _, p := range g.productions[nt] {
				if p.Epsilon || productive[p.Next] {
					productive[nt] = true
					changed = true
					break
				}
			}
		}
	}

	reachable := map[State]bool{g.start: true}
	stack := []State{g.start}
	for len(stack) > 0 {
		nt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range g.productions[nt] {
			if p.Epsilon || !productive[p.Next] || reachable[p.Next] {
				continue
			}
			reachable[p.Next] = true
			stack = append(stack, p.Next)
		}
	}

	reduced := &Grammar{
		start:       g.start,
		terminals:   append([]Symbol(nil), g.terminals...),
		productions: make(map[State][]Production),
	}
	for _, nt := range g.nonterminals {
		if !reachable[nt] {
			continue
		}
		reduced.nonterminals = append(reduced.nonterminals, nt)
		prods := []Production{}
		for _, p := range g.productions[nt] {
			if p.Epsilon || productive[p.Next] {
				prods = append(prods, p)
			}
		}
		reduced.productions[nt] = prods
	}
	return reduced
}

//
// Helper Functions (internal API)
//

func appendProduction(prods []Production, p Production) []Production {
	for _, x := range prods {
		if x == p {
			return prods
		}
	}
	return append(prods, p)
}

func wordKey(word []Symbol) string {
	parts := make([]string, len(word))
	for i, c := range word {
		parts[i] = string(c)
	}
	return strings.Join(parts, "\x1f")
}
