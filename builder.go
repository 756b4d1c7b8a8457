package automatonx

// Builder provides a fluent API for constructing automata by name instead of
// assembling state, alphabet and transition slices by hand.
// States and symbols are declared the first time they are referenced.
type Builder struct {
	start       State
	states      []State
	seenStates  map[State]bool
	alphabet    []Symbol
	seenSymbols map[Symbol]bool
	transitions []Transition
	accept      []State
}

// StateBuilder provides fluent methods for configuring a single state.
type StateBuilder struct {
	b     *Builder
	state State
}

// NewBuilder creates a builder whose automaton starts in start.
func NewBuilder(start State) *Builder {
	b := &Builder{
		start:       start,
		seenStates:  make(map[State]bool),
		seenSymbols: make(map[Symbol]bool),
	}
	b.declareState(start)
	return b
}

// State creates or retrieves a state by name.
func (b *Builder) State(name State) *StateBuilder {
	b.declareState(name)
	return &StateBuilder{b: b, state: name}
}

// Symbols declares alphabet symbols that may not appear on any transition.
func (b *Builder) Symbols(symbols ...Symbol) *Builder {
	for _, c := range symbols {
		b.declareSymbol(c)
	}
	return b
}

// Build validates the configuration and constructs the Automaton.
func (b *Builder) Build() (*Automaton, error) {
	return NewAutomaton(b.states, b.alphabet, b.transitions, b.start, b.accept)
}

func (b *Builder) declareState(s State) {
	if b.seenStates[s] {
		return
	}
	b.seenStates[s] = true
	b.states = append(b.states, s)
}

func (b *Builder) declareSymbol(c Symbol) {
	if b.seenSymbols[c] {
		return
	}
	b.seenSymbols[c] = true
	b.alphabet = append(b.alphabet, c)
}

// StateBuilder fluent methods

// On adds transitions from this state on symbol to every target.
// Repeated calls with the same symbol accumulate targets.
func (sb *StateBuilder) On(symbol Symbol, targets ...State) *StateBuilder {
	sb.b.declareSymbol(symbol)
	for _, t := range targets {
		sb.b.declareState(t)
	}
	sb.b.transitions = append(sb.b.transitions, Transition{
		From:   sb.state,
		Symbol: symbol,
		To:     append([]State(nil), targets...),
	})
	return sb
}

// Accept marks this state as accepting.
func (sb *StateBuilder) Accept() *StateBuilder {
	sb.b.accept = append(sb.b.accept, sb.state)
	return sb
}

// State switches to another state of the same builder.
func (sb *StateBuilder) State(name State) *StateBuilder {
	return sb.b.State(name)
}

// Build is a shorthand for the owning builder's Build.
func (sb *StateBuilder) Build() (*Automaton, error) {
	return sb.b.Build()
}
