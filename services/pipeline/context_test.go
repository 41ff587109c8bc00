package pipeline

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNode_MergePreservesExistingKeys(t *testing.T) {
	tc := NewTaskContext(nil)

	require.NoError(t, tc.UpdateNode("X", NodeResult{"a": 1}))
	require.NoError(t, tc.UpdateNode("X", NodeResult{"b": 2}))

	assert.Equal(t, 1, tc.Nodes["X"]["a"])
	assert.Equal(t, 2, tc.Nodes["X"]["b"])
}

func TestUpdateNode_OverwritesOnlyNamedKeys(t *testing.T) {
	tc := NewTaskContext(nil)

	require.NoError(t, tc.UpdateNode("X", NodeResult{"a": 1, "b": 2}))
	require.NoError(t, tc.UpdateNode("X", NodeResult{"b": 3}))

	assert.Equal(t, 1, tc.Nodes["X"]["a"])
	assert.Equal(t, 3, tc.Nodes["X"]["b"])
}

func TestUpdateNode_DoesNotTouchOtherNodes(t *testing.T) {
	tc := NewTaskContext(nil)

	require.NoError(t, tc.UpdateNode("X", NodeResult{"a": 1}))
	require.NoError(t, tc.UpdateNode("Y", NodeResult{"a": 99}))

	assert.Equal(t, 1, tc.Nodes["X"]["a"])
	assert.Equal(t, 99, tc.Nodes["Y"]["a"])
}

func TestStatus_AbsentNodeOrField(t *testing.T) {
	tc := NewTaskContext(nil)

	assert.Empty(t, tc.Status("missing"))

	require.NoError(t, tc.UpdateNode("X", NodeResult{"response": "ok"}))
	assert.Empty(t, tc.Status("X"))

	require.NoError(t, tc.UpdateNode("X", NodeResult{"status": StatusBlocked}))
	assert.Equal(t, StatusBlocked, tc.Status("X"))
}

func TestTaskContext_Serializable(t *testing.T) {
	tc := NewTaskContext(map[string]any{"request": "schedule lunch"})
	require.NoError(t, tc.UpdateNode("X", NodeResult{"status": StatusError, "error": "boom"}))

	data, err := json.Marshal(tc)
	require.NoError(t, err)

	var decoded TaskContext
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "boom", decoded.Nodes["X"]["error"])
}
