package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticRule always answers with the configured identity.
type staticRule struct{ next string }

func (r staticRule) NextNode(_ *TaskContext) string { return r.next }

func TestRouter_FirstMatchWins(t *testing.T) {
	router := NewRouter("r", []RoutingRule{
		staticRule{next: ""},
		staticRule{next: "C"},
		staticRule{next: "B"},
	}, "F")

	assert.Equal(t, "C", router.Route(NewTaskContext(nil)))
}

func TestRouter_FallbackWhenNoRuleMatches(t *testing.T) {
	router := NewRouter("r", []RoutingRule{
		staticRule{next: ""},
		staticRule{next: ""},
	}, "F")

	assert.Equal(t, "F", router.Route(NewTaskContext(nil)))
}

func TestRouter_EmptyFallbackTerminates(t *testing.T) {
	router := NewRouter("r", nil, "")

	assert.Equal(t, "", router.Route(NewTaskContext(nil)))
}

func TestRouter_ProcessRecordsDecisionOnly(t *testing.T) {
	router := NewRouter("r", []RoutingRule{staticRule{next: "C"}}, "")
	tc := NewTaskContext(nil)
	require.NoError(t, tc.UpdateNode("other", NodeResult{"a": 1}))

	require.NoError(t, router.Process(context.Background(), tc))

	assert.Equal(t, "C", tc.Nodes["r"]["next_node"])
	assert.Equal(t, 1, tc.Nodes["other"]["a"])
	assert.Len(t, tc.Nodes, 2)
}
