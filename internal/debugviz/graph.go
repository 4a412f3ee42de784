// Package debugviz renders a plain node/edge graph to SVG using
// graphviz, for the debug endpoint that visualizes a window's tracked
// objects and their recent command history (SPEC_FULL.md supplemented
// feature 6).
package debugviz

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// Node is one vertex in a causality graph.
type Node struct {
	ID    string
	Label string
}

// Edge is a directed edge between two node IDs.
type Edge struct {
	From string
	To   string
}

// Graph is a plain directed graph, independent of any particular
// engine's internal representation.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// RenderSVG lays out g and returns its SVG rendering.
func RenderSVG(g Graph) ([]byte, error) {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("debugviz: setup graph: %w", err)
	}
	defer func() {
		_ = graph.Close()
		gv.Close()
	}()

	nodes := make(map[string]*cgraph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		cn, err := graph.CreateNode(n.ID)
		if err != nil {
			return nil, fmt.Errorf("debugviz: create node %s: %w", n.ID, err)
		}
		cn.SetLabel(n.Label)
		nodes[n.ID] = cn
	}
	for i, e := range g.Edges {
		from, ok := nodes[e.From]
		if !ok {
			return nil, fmt.Errorf("debugviz: edge references unknown node %s", e.From)
		}
		to, ok := nodes[e.To]
		if !ok {
			return nil, fmt.Errorf("debugviz: edge references unknown node %s", e.To)
		}
		if _, err := graph.CreateEdge(fmt.Sprintf("e%d", i), from, to); err != nil {
			return nil, fmt.Errorf("debugviz: create edge %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("debugviz: render: %w", err)
	}
	return buf.Bytes(), nil
}
