package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

// maxSteps bounds a single run so a definition bug or a misbehaving router
// cannot loop forever.
const maxSteps = 100

// Executor owns a graph and its node registry and drives a TaskContext
// through the graph until a terminal condition is reached. It is safe for
// concurrent use: each run owns its own context and its own freshly
// instantiated nodes, and the graph and registry are never mutated after
// construction.
type Executor struct {
	graph    *Graph
	registry Registry
	logger   *slog.Logger
}

// NewExecutor builds an executor, checking that every identity in the graph
// has a registered factory.
func NewExecutor(graph *Graph, registry Registry, logger *slog.Logger) (*Executor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, id := range graph.IDs() {
		if _, ok := registry[id]; !ok {
			return nil, fmt.Errorf("no factory registered for node %q", id)
		}
	}
	return &Executor{graph: graph, registry: registry, logger: logger}, nil
}

// Run threads a fresh TaskContext for event through the graph. It never
// returns an error: the first failure raised by a node, or by next-node
// resolution, is recorded as the context's ErrorRecord and the context is
// returned as-is. Callers must inspect TaskContext.Error to detect failure.
func (e *Executor) Run(ctx context.Context, event any) *TaskContext {
	tc := NewTaskContext(event)
	current := e.graph.Start()
	steps := 0

	for current != "" {
		if steps >= maxSteps {
			tc.Error = newErrorRecord(current, fmt.Errorf("run exceeded %d steps (possible cycle)", maxSteps))
			break
		}

		node, err := e.instantiate(current)
		if err != nil {
			tc.Error = newErrorRecord(current, err)
			break
		}

		if err := e.processNode(ctx, node, tc); err != nil {
			tc.Error = newErrorRecord(current, err)
			break
		}
		steps++

		next, err := e.nextNode(current, tc)
		if err != nil {
			tc.Error = newErrorRecord(current, err)
			break
		}
		current = next
	}

	tc.Metadata["steps"] = steps
	return tc
}

// processNode wraps one node invocation in a logging scope. Errors are
// re-raised so that Run remains the single place a run is finalized.
func (e *Executor) processNode(ctx context.Context, node Node, tc *TaskContext) error {
	e.logger.Info("Starting node", "node", node.Name())
	if err := node.Process(ctx, tc); err != nil {
		e.logger.Error("Node failed", "node", node.Name(), "error", err)
		return err
	}
	e.logger.Debug("Completed node", "node", node.Name())
	return nil
}

// instantiate builds a fresh node for one step. No instance is reused.
func (e *Executor) instantiate(id string) (Node, error) {
	factory, ok := e.registry[id]
	if !ok {
		return nil, fmt.Errorf("no factory registered for node %q", id)
	}
	return factory(), nil
}

// nextNode resolves the identity of the node to run after current, or ""
// when the run is terminal. A halting status recorded by current stops the
// run before any successor is consulted.
func (e *Executor) nextNode(current string, tc *TaskContext) (string, error) {
	switch tc.Status(current) {
	case StatusFailed, StatusBlocked, StatusError:
		return "", nil
	}

	spec, ok := e.graph.Spec(current)
	if !ok || len(spec.Successors) == 0 {
		return "", nil
	}

	if spec.IsRouter {
		node, err := e.instantiate(current)
		if err != nil {
			return "", err
		}
		brancher, ok := node.(Brancher)
		if !ok {
			return "", fmt.Errorf("node %q is declared as a router but does not route", current)
		}
		return brancher.Route(tc), nil
	}

	return spec.Successors[0], nil
}
