package pipeline

import (
	"fmt"

	"dario.cat/mergo"
)

// NodeResult is the open-shape record a node writes under its own identity.
// Typical fields are "status", "response" and "usage", but nodes are free to
// record whatever describes their outcome.
type NodeResult map[string]any

// Statuses a node may record. The halting set (failed, blocked, error) stops
// traversal regardless of declared successors.
const (
	StatusFailed  = "failed"
	StatusBlocked = "blocked"
	StatusError   = "error"
)

// TaskContext is the mutable state threaded through a single pipeline run.
// It is created fresh per run, mutated only by that run, and remains
// serializable after the run returns: the runtime node registry lives on the
// Executor and is never placed in Metadata.
type TaskContext struct {
	Event    any                   `json:"event"`
	Nodes    map[string]NodeResult `json:"nodes"`
	Metadata map[string]any        `json:"metadata,omitempty"`
	Error    *ErrorRecord          `json:"error,omitempty"`
}

// NewTaskContext wraps an input event in an empty run context. The event is
// opaque to the engine beyond being serializable.
func NewTaskContext(event any) *TaskContext {
	return &TaskContext{
		Event:    event,
		Nodes:    make(map[string]NodeResult),
		Metadata: make(map[string]any),
	}
}

// UpdateNode merges fields into the record stored under name. Keys the update
// does not mention are preserved; the record is created if it does not exist.
func (tc *TaskContext) UpdateNode(name string, fields NodeResult) error {
	merged := NodeResult{}
	if existing, ok := tc.Nodes[name]; ok {
		if err := mergo.Merge(&merged, existing); err != nil {
			return fmt.Errorf("merge node %q: %w", name, err)
		}
	}
	if err := mergo.Merge(&merged, fields, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge node %q: %w", name, err)
	}
	tc.Nodes[name] = merged
	return nil
}

// Status returns the status recorded under name, or "" when no status was set.
func (tc *TaskContext) Status(name string) string {
	status, _ := tc.Nodes[name]["status"].(string)
	return status
}
