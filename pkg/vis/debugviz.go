package vis

import (
	"fmt"

	"github.com/kdsutter/visstream/internal/debugviz"
)

// CausalityGraph builds a debug graph of windowID's tracked objects and
// their recent command history: one chain of nodes per object, in the
// order recordEvent observed them, capped at causalityRingLimit events
// per object (SPEC_FULL.md supplemented feature 6).
func (e *Engine) CausalityGraph(windowID string) (debugviz.Graph, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.windows[windowID]; !ok {
		return debugviz.Graph{}, ErrWindowNotFound
	}

	var g debugviz.Graph
	for _, objID := range e.objectOrder {
		t, ok := e.objects[objID]
		if !ok || t.windowID != windowID {
			continue
		}
		var prevNodeID string
		for i, kind := range t.history {
			nodeID := fmt.Sprintf("%s_%d", objID, i)
			g.Nodes = append(g.Nodes, debugviz.Node{
				ID:    nodeID,
				Label: fmt.Sprintf("%s\n%s #%d", objID, kind.String(), i),
			})
			if prevNodeID != "" {
				g.Edges = append(g.Edges, debugviz.Edge{From: prevNodeID, To: nodeID})
			}
			prevNodeID = nodeID
		}
	}
	return g, nil
}
