// AutomatonConfig represents a complete automaton document: states, alphabet,
// transitions, start and accept states, plus an ID and optional version.

package primitives

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comalice/automatonx"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid automaton config")

// AutomatonConfig defines the complete automaton document.
type AutomatonConfig struct {
	Version     string             `json:"version,omitempty" yaml:"version,omitempty"`
	ID          string             `json:"id" yaml:"id"`
	States      []string           `json:"states" yaml:"states"`
	Alphabet    []string           `json:"alphabet" yaml:"alphabet"`
	Start       string             `json:"start" yaml:"start"`
	Accept      []string           `json:"accept,omitempty" yaml:"accept,omitempty"`
	Transitions []TransitionConfig `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// TransitionConfig is one (from, symbol) -> {to...} entry.
type TransitionConfig struct {
	From   string   `json:"from" yaml:"from"`
	Symbol string   `json:"symbol" yaml:"symbol"`
	To     []string `json:"to" yaml:"to"`
}

// Validate checks the document shape:
// - Non-empty ID and Start
// - At least one state
// - Every transition has a source, a symbol and at least one target
//
// Membership of start, accept and transition endpoints is checked by Build.
func (c *AutomatonConfig) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidConfig)
	}
	if c.Start == "" {
		return fmt.Errorf("%w: start state is required", ErrInvalidConfig)
	}
	if len(c.States) == 0 {
		return fmt.Errorf("%w: states list is required and cannot be empty", ErrInvalidConfig)
	}
	for i, t := range c.Transitions {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: transition %d: %v", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// Validate checks a single transition entry.
func (t *TransitionConfig) Validate() error {
	if t.From == "" {
		return errors.New("from is required")
	}
	if t.Symbol == "" {
		return errors.New("symbol is required")
	}
	if len(t.To) == 0 {
		return errors.New("at least one target is required")
	}
	return nil
}

// Build validates the document and constructs the automaton it describes.
func (c *AutomatonConfig) Build() (*automatonx.Automaton, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	states := make([]automatonx.State, len(c.States))
	for i, s := range c.States {
		states[i] = automatonx.State(s)
	}
	alphabet := make([]automatonx.Symbol, len(c.Alphabet))
	for i, s := range c.Alphabet {
		alphabet[i] = automatonx.Symbol(s)
	}
	accept := make([]automatonx.State, len(c.Accept))
	for i, s := range c.Accept {
		accept[i] = automatonx.State(s)
	}
	transitions := make([]automatonx.Transition, len(c.Transitions))
	for i, t := range c.Transitions {
		to := make([]automatonx.State, len(t.To))
		for j, s := range t.To {
			to[j] = automatonx.State(s)
		}
		transitions[i] = automatonx.Transition{
			From:   automatonx.State(t.From),
			Symbol: automatonx.Symbol(t.Symbol),
			To:     to,
		}
	}

	a, err := automatonx.NewAutomaton(states, alphabet, transitions, automatonx.State(c.Start), accept)
	if err != nil {
		return nil, fmt.Errorf("automaton %q: %w", c.ID, err)
	}
	return a, nil
}

// FromAutomaton converts a built automaton back into a document with the given ID.
func FromAutomaton(id string, a *automatonx.Automaton) AutomatonConfig {
	c := AutomatonConfig{
		ID:    id,
		Start: string(a.Start()),
	}
	for _, s := range a.States() {
		c.States = append(c.States, string(s))
	}
	for _, s := range a.Alphabet() {
		c.Alphabet = append(c.Alphabet, string(s))
	}
	for _, s := range a.AcceptStates() {
		c.Accept = append(c.Accept, string(s))
	}
	for _, t := range a.Transitions() {
		tc := TransitionConfig{From: string(t.From), Symbol: string(t.Symbol)}
		for _, s := range t.To {
			tc.To = append(tc.To, string(s))
		}
		c.Transitions = append(c.Transitions, tc)
	}
	return c
}
