// Package automatonx models finite automata whose transition relation maps a
// (state, symbol) pair to a set of destination states.
//
// Three operations work on a built Automaton:
//   - IsDeterministic classifies it as a DFA or an NFA
//   - ToRegularGrammar derives the equivalent right-regular grammar
//   - Determinize runs the subset construction and returns an equivalent DFA
//
// # Example Usage
//
//	nfa, _ := automatonx.NewBuilder("q0").
//		State("q0").On("a", "q1", "q2").
//		State("q1").On("b", "q1").On("a", "q2").
//		State("q2").On("a", "q1").On("b", "q3").
//		State("q3").Accept().
//		Build()
//	dfa, _ := automatonx.Determinize(nfa)
//	fmt.Print(automatonx.ToRegularGrammar(dfa))
//
// An Automaton never changes after construction, so any number of goroutines
// may call these operations on the same value concurrently.
package automatonx
