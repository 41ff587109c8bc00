package pipeline

import "context"

// Node is a single processing step. Process reads and transforms the task
// context, recording its outcome under its own identity via UpdateNode, and
// returns a classified Failure (or any error) to abort the run. External side
// effects are expected; the engine does not care what a node does internally.
type Node interface {
	Name() string
	Process(ctx context.Context, tc *TaskContext) error
}

// NodeFactory builds a fresh node instance for one traversal step. Nodes may
// assume no internal state persists between steps of a run.
type NodeFactory func() Node

// Registry maps node identities to their factories.
type Registry map[string]NodeFactory

// Brancher is implemented by nodes that pick their successor dynamically.
// Route must be a pure function of the context's current contents; an empty
// return terminates the run.
type Brancher interface {
	Node
	Route(tc *TaskContext) string
}

// RoutingRule inspects prior node outcomes and returns the next node identity,
// or "" when the rule does not apply.
type RoutingRule interface {
	NextNode(tc *TaskContext) string
}

// Router chooses its successor from an ordered rule list plus a fallback.
// Rules are evaluated in declaration order and the first non-empty answer
// wins; when every rule abstains, the fallback is used (which may itself be
// empty, meaning the run terminates here).
type Router struct {
	name     string
	rules    []RoutingRule
	fallback string
}

// NewRouter builds a router node. The rule list and fallback are fixed at
// construction and treated as read-only afterward.
func NewRouter(name string, rules []RoutingRule, fallback string) *Router {
	return &Router{name: name, rules: rules, fallback: fallback}
}

func (r *Router) Name() string { return r.name }

// Route evaluates the rules in order; the first non-empty identity wins.
func (r *Router) Route(tc *TaskContext) string {
	for _, rule := range r.rules {
		if next := rule.NextNode(tc); next != "" {
			return next
		}
	}
	return r.fallback
}

// Process records the routing decision under the router's own identity for
// traceability and makes no other mutation.
func (r *Router) Process(_ context.Context, tc *TaskContext) error {
	return tc.UpdateNode(r.name, NodeResult{"next_node": r.Route(tc)})
}
