package debugviz

import (
	"bytes"
	"testing"
)

func TestRenderSVGEmptyGraph(t *testing.T) {
	svg, err := RenderSVG(Graph{})
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if len(svg) == 0 {
		t.Fatal("expected non-empty SVG output for an empty graph")
	}
}

func TestRenderSVGWithNodesAndEdges(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}
	svg, err := RenderSVG(g)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) && !bytes.Contains(svg, []byte("<?xml")) {
		t.Fatalf("expected SVG-shaped output, got: %s", svg)
	}
}

func TestRenderSVGRejectsDanglingEdge(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Label: "A"}},
		Edges: []Edge{{From: "a", To: "nonexistent"}},
	}
	if _, err := RenderSVG(g); err == nil {
		t.Fatal("expected an error for an edge referencing an unknown node")
	}
}
