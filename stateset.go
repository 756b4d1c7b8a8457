package automatonx

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// State sets are bitsets over the declaration index of each state.

func (a *Automaton) singleton(s State) *bitset.BitSet {
	return bitset.New(uint(len(a.states))).Set(uint(a.index[s]))
}

// move returns the union of the destinations of every member of set on c.
func (a *Automaton) move(set *bitset.BitSet, c Symbol) *bitset.BitSet {
	next := bitset.New(uint(len(a.states)))
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		for _, d := range a.delta[transitionKey{from: a.states[i], symbol: c}] {
			next.Set(uint(a.index[d]))
		}
	}
	return next
}

func (a *Automaton) meetsAccept(set *bitset.BitSet) bool {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if a.isAccept[a.states[i]] {
			return true
		}
	}
	return false
}

// members returns the labels in set, sorted.
func (a *Automaton) members(set *bitset.BitSet) []string {
	labels := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		labels = append(labels, string(a.states[i]))
	}
	sort.Strings(labels)
	return labels
}
