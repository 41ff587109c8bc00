package pipeline

import "fmt"

// NodeSpec declares a node identity, its static successor edges, and whether
// the node picks its successor dynamically at runtime.
type NodeSpec struct {
	ID          string
	Successors  []string
	IsRouter    bool
	Description string
}

// Graph is the immutable definition of a pipeline: an entry node plus the
// fully resolved adjacency registry. Once built it is safe to share read-only
// across concurrent runs.
type Graph struct {
	start string
	specs map[string]NodeSpec
}

// NewGraph resolves a declared node list into a complete registry. Identities
// that appear only as successors are auto-registered as terminal leaves.
// Construction fails on a duplicate identity, on multiple static successors
// declared for a non-router node, and on a start identity that resolves to
// nothing.
func NewGraph(start string, specs []NodeSpec) (*Graph, error) {
	registry := make(map[string]NodeSpec, len(specs))

	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("graph declares a node with an empty identity")
		}
		if _, dup := registry[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate node %q in graph definition", spec.ID)
		}
		if !spec.IsRouter && len(spec.Successors) > 1 {
			return nil, fmt.Errorf("node %q declares %d successors but is not a router", spec.ID, len(spec.Successors))
		}
		registry[spec.ID] = spec
	}

	// Nodes referenced only as successors become terminal leaves.
	for _, spec := range specs {
		for _, succ := range spec.Successors {
			if _, ok := registry[succ]; !ok {
				registry[succ] = NodeSpec{ID: succ}
			}
		}
	}

	if _, ok := registry[start]; !ok {
		return nil, fmt.Errorf("start node %q not found in graph definition", start)
	}

	return &Graph{start: start, specs: registry}, nil
}

// Start returns the identity of the entry node.
func (g *Graph) Start() string { return g.start }

// Spec returns the resolved spec for id.
func (g *Graph) Spec(id string) (NodeSpec, bool) {
	spec, ok := g.specs[id]
	return spec, ok
}

// IDs lists every registered identity, declared or auto-added.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.specs))
	for id := range g.specs {
		ids = append(ids, id)
	}
	return ids
}
