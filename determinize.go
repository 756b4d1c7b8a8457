package automatonx

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ErrAmbiguousCompositeName is returned by Determinize when two different
// state sets would be given the same composite name.
var ErrAmbiguousCompositeName = errors.New("ambiguous composite state name")

type determinizeOptions struct {
	separator string
	logger    *slog.Logger
}

// DeterminizeOption configures Determinize via functional options pattern.
type DeterminizeOption func(*determinizeOptions)

// WithNameSeparator joins the sorted member labels of a composite state with
// sep. The default is the empty string, so {q1, q2} is named "q1q2".
// Labels that concatenate ambiguously, such as 1, 2 and 12, make the
// default fail with ErrAmbiguousCompositeName; a separator that appears in
// no label avoids that.
func WithNameSeparator(sep string) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.separator = sep
	}
}

// WithLogger routes debug output of the construction to logger.
func WithLogger(logger *slog.Logger) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.logger = logger
	}
}

// composite is a discovered DFA state and the source states it stands for.
type composite struct {
	name string
	set  *bitset.BitSet
}

// Determinize builds a deterministic automaton accepting the same language
// as a using the subset construction. Only reachable subsets become states
// and no sink state is added, so the result may be partial.
//
// Composite states are identified by their member set; the name is only a
// label. If two distinct sets would share a name the construction fails with
// ErrAmbiguousCompositeName.
func Determinize(a *Automaton, opts ...DeterminizeOption) (*Automaton, error) {
	o := determinizeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	names := make(map[string]string) // name -> set key
	known := make(map[string]composite)
	var order []string

	discover := func(set *bitset.BitSet) (composite, bool, error) {
		key := set.String()
		if c, ok := known[key]; ok {
			return c, false, nil
		}
		name := strings.Join(a.members(set), o.separator)
		if other, taken := names[name]; taken && other != key {
			return composite{}, false, fmt.Errorf("%w: %q names both %s and %s (set a separator with WithNameSeparator)", ErrAmbiguousCompositeName, name, other, key)
		}
		c := composite{name: name, set: set}
		names[name] = key
		known[key] = c
		order = append(order, key)
		return c, true, nil
	}

	start, _, err := discover(a.singleton(a.start))
	if err != nil {
		return nil, err
	}

	var (
		transitions []Transition
		accept      []State
	)
	if a.meetsAccept(start.set) {
		accept = append(accept, State(start.name))
	}

	frontier := []composite{start}
	for len(frontier) > 0 {
		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		o.logger.Debug("expanding composite state", "state", current.name, "pending", len(frontier))

		for _, c := range a.alphabet {
			next := a.move(current.set, c)
			if next.None() {
				continue
			}
			target, isNew, err := discover(next)
			if err != nil {
				return nil, err
			}
			transitions = append(transitions, Transition{
				From:   State(current.name),
				Symbol: c,
				To:     []State{State(target.name)},
			})
			if !isNew {
				continue
			}
			frontier = append(frontier, target)
			if a.meetsAccept(target.set) {
				accept = append(accept, State(target.name))
			}
		}
	}

	states := make([]State, len(order))
	for i, key := range order {
		states[i] = State(known[key].name)
	}
	o.logger.Debug("subset construction finished", "states", len(states), "transitions", len(transitions))

	return NewAutomaton(states, a.alphabet, transitions, State(start.name), accept)
}
