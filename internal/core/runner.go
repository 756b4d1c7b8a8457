// Package core provides the runtime tier of the automaton engine: a Runner
// that feeds symbols to an automaton one at a time and tracks the set of
// states it may be in.
// Dependencies: the root automatonx package.

package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/comalice/automatonx"
)

// ErrUnknownSymbol is returned by Step for symbols outside the alphabet.
var ErrUnknownSymbol = errors.New("symbol not in alphabet")

// Publisher receives one record per consumed symbol.
type Publisher interface {
	Publish(ctx context.Context, step StepRecord) error
	Close() error
}

// StepRecord is the serializable trace of one Step.
type StepRecord struct {
	RunnerID  string    `json:"runnerID" yaml:"runnerID"`
	Index     int       `json:"index" yaml:"index"`
	Symbol    string    `json:"symbol" yaml:"symbol"`
	From      []string  `json:"from" yaml:"from"`
	To        []string  `json:"to" yaml:"to"`
	Accepting bool      `json:"accepting" yaml:"accepting"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Option applies configuration to Runner via functional options pattern.
type Option func(*Runner)

// Runner simulates an automaton over its active state set.
// Thread-safe: Step, Current and Reset may be called from several goroutines,
// each Step is applied atomically.
type Runner struct {
	id        string
	automaton *automatonx.Automaton
	states    []automatonx.State
	index     map[automatonx.State]uint

	mu      sync.RWMutex
	current *bitset.BitSet
	steps   int

	logger    *slog.Logger
	publisher Publisher
}

// NewRunner creates a Runner positioned at the automaton's start state.
func NewRunner(a *automatonx.Automaton, opts ...Option) *Runner {
	r := &Runner{
		id:        "runner",
		automaton: a,
		states:    a.States(),
		index:     make(map[automatonx.State]uint),
	}
	for i, s := range r.states {
		r.index[s] = uint(i)
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	r.current = r.startSet()
	return r
}

// Step consumes one symbol. Unknown symbols leave the runner unchanged and
// return ErrUnknownSymbol. A symbol with no outgoing transitions empties the
// active set, after which the runner is stuck until Reset.
func (r *Runner) Step(ctx context.Context, c automatonx.Symbol) error {
	if !r.automaton.HasSymbol(c) {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, c)
	}

	r.mu.Lock()
	from := r.labels(r.current)
	next := bitset.New(uint(len(r.states)))
	for i, ok := r.current.NextSet(0); ok; i, ok = r.current.NextSet(i + 1) {
		for _, d := range r.automaton.Destinations(r.states[i], c) {
			next.Set(r.index[d])
		}
	}
	r.current = next
	r.steps++
	record := StepRecord{
		RunnerID:  r.id,
		Index:     r.steps,
		Symbol:    string(c),
		From:      from,
		To:        r.labels(next),
		Accepting: r.accepting(next),
		Timestamp: time.Now(),
	}
	r.mu.Unlock()

	r.logger.Debug("step", "runner", r.id, "symbol", record.Symbol, "from", record.From, "to", record.To, "accepting", record.Accepting)

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, record); err != nil {
			return fmt.Errorf("publish step %d: %w", record.Index, err)
		}
	}
	return nil
}

// Run resets the runner, feeds word and reports whether it ended accepting.
// Cancellation is checked before every symbol.
func (r *Runner) Run(ctx context.Context, word []automatonx.Symbol) (bool, error) {
	r.Reset()
	for _, c := range word {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := r.Step(ctx, c); err != nil {
			return false, err
		}
		if r.Stuck() {
			return false, nil
		}
	}
	return r.Accepting(), nil
}

// Current returns the active states in declaration order.
func (r *Runner) Current() []automatonx.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []automatonx.State
	for i, ok := r.current.NextSet(0); ok; i, ok = r.current.NextSet(i + 1) {
		out = append(out, r.states[i])
	}
	return out
}

// Accepting reports whether any active state accepts.
func (r *Runner) Accepting() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accepting(r.current)
}

// Stuck reports whether no state is active.
func (r *Runner) Stuck() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.None()
}

// Steps returns the number of symbols consumed since the last Reset.
func (r *Runner) Steps() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.steps
}

// Reset returns the runner to the start state.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = r.startSet()
	r.steps = 0
}

//
// Helper Functions (internal API)
//

func (r *Runner) startSet() *bitset.BitSet {
	return bitset.New(uint(len(r.states))).Set(r.index[r.automaton.Start()])
}

func (r *Runner) accepting(set *bitset.BitSet) bool {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if r.automaton.IsAccept(r.states[i]) {
			return true
		}
	}
	return false
}

func (r *Runner) labels(set *bitset.BitSet) []string {
	out := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, string(r.states[i]))
	}
	return out
}
