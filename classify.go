package automatonx

// IsDeterministic reports whether every (state, symbol) pair of a has at most
// one destination. Missing transitions are allowed.
func IsDeterministic(a *Automaton) bool {
	for _, s := range a.states {
		for _, c := range a.alphabet {
			if len(a.delta[transitionKey{from: s, symbol: c}]) > 1 {
				return false
			}
		}
	}
	return true
}
