// Package production provides production integrations: persistence, step
// publishing, visualization.
// Implements core interfaces using stdlib where possible.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comalice/automatonx"
	"github.com/comalice/automatonx/internal/primitives"
)

// DefaultVisualizer renders automata as Graphviz DOT.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the automaton. Accepting states
// are drawn as double circles, the start state gets an arrow from an
// invisible node, and states in highlight are filled.
func (v *DefaultVisualizer) ExportDOT(a *automatonx.Automaton, highlight []automatonx.State) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Automaton {
  rankdir=LR;
  size="8,5";
  node [fontsize=10];
  edge [fontsize=9];
`)

	active := make(map[automatonx.State]bool, len(highlight))
	for _, s := range highlight {
		active[s] = true
	}

	for _, s := range a.States() {
		shape := "circle"
		if a.IsAccept(s) {
			shape = "doublecircle"
		}
		style := ""
		if active[s] {
			style = ` style=filled fillcolor=lightgreen`
		}
		buf.WriteString(fmt.Sprintf("  %s [shape=%s%s];\n", quote(string(s)), shape, style))
	}

	entry := startNodeID(a)
	buf.WriteString(fmt.Sprintf("  %s [shape=none label=\"\"];\n", quote(entry)))
	buf.WriteString(fmt.Sprintf("  %s -> %s;\n", quote(entry), quote(string(a.Start()))))

	for _, edge := range collectEdges(a) {
		buf.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n", quote(edge.From), quote(edge.To), quote(edge.Label)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the automaton document to JSON.
func (v *DefaultVisualizer) ExportJSON(config primitives.AutomatonConfig) ([]byte, error) {
	return json.MarshalIndent(config, "", "  ")
}

// startNodeID names the invisible node the start arrow leaves from, avoiding
// every state label.
func startNodeID(a *automatonx.Automaton) string {
	id := "__start"
	for a.HasState(automatonx.State(id)) {
		id += "_"
	}
	return id
}

// Edge represents one drawn transition. Symbols sharing a source and target
// are merged into one comma-separated label.
type Edge struct {
	From  string
	To    string
	Label string
}

// collectEdges groups transitions by (from, to) in declaration order.
func collectEdges(a *automatonx.Automaton) []Edge {
	type pair struct{ from, to automatonx.State }
	var (
		order  []pair
		labels = make(map[pair][]string)
	)
	for _, t := range a.Transitions() {
		for _, to := range t.To {
			p := pair{from: t.From, to: to}
			if _, ok := labels[p]; !ok {
				order = append(order, p)
			}
			labels[p] = append(labels[p], string(t.Symbol))
		}
	}
	edges := make([]Edge, len(order))
	for i, p := range order {
		edges[i] = Edge{From: string(p.from), To: string(p.to), Label: strings.Join(labels[p], ",")}
	}
	return edges
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}
