// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/automatonx"
	"github.com/comalice/automatonx/internal/primitives"
)

// GenNthFromEnd creates the NFA for "the n-th symbol from the end is a" over
// {a, b}. It has n+1 states and its DFA has 2^n.
func GenNthFromEnd(n int) *automatonx.Automaton {
	if n < 1 {
		n = 1
	}
	b := automatonx.NewBuilder("s0")
	b.State("s0").On("a", "s0", "s1").On("b", "s0")
	for i := 1; i < n; i++ {
		next := automatonx.State(fmt.Sprintf("s%d", i+1))
		b.State(automatonx.State(fmt.Sprintf("s%d", i))).On("a", next).On("b", next)
	}
	b.State(automatonx.State(fmt.Sprintf("s%d", n))).Accept()
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}

// GenCycle creates a deterministic n-state cycle on "tick".
func GenCycle(n int) *automatonx.Automaton {
	if n < 1 {
		n = 1
	}
	b := automatonx.NewBuilder("s0")
	for i := 0; i < n; i++ {
		b.State(automatonx.State(fmt.Sprintf("s%d", i))).On("tick", automatonx.State(fmt.Sprintf("s%d", (i+1)%n)))
	}
	b.State("s0").Accept()
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}

// GenConfigYAML renders the n-th-from-end automaton as a YAML document.
func GenConfigYAML(n int) []byte {
	config := primitives.FromAutomaton(fmt.Sprintf("nth_%d", n), GenNthFromEnd(n))
	data, err := yaml.Marshal(config)
	if err != nil {
		panic(err)
	}
	return data
}
