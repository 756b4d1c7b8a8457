// Package primitives provides the serializable configuration documents for
// automata.
//
// An AutomatonConfig is the on-disk and over-the-wire form of an
// automatonx.Automaton. It carries json and yaml tags so the same document can
// be stored by any persister in internal/production.
//
// Core invariants:
// - Validate checks document shape only (IDs, required fields)
// - Build delegates set membership checks to automatonx.NewAutomaton
// - FromAutomaton(Build(c)) reproduces c up to duplicate collapsing
package primitives
