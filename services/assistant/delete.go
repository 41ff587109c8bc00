package assistant

import (
	"context"
	"log/slog"

	"calendar-assistant/api/services/calendar"
	"calendar-assistant/api/services/pipeline"
)

// deleteExecuteNode removes every event the lookup step matched.
type deleteExecuteNode struct {
	deps Deps
}

func (n *deleteExecuteNode) Name() string { return NodeDeleteExecute }

func (n *deleteExecuteNode) Process(ctx context.Context, tc *pipeline.TaskContext) error {
	found, ok := storedResponse[[]calendar.Event](tc, NodeLookupExecute)
	if !ok || len(found) == 0 {
		return pipeline.ValidationFailure("target events for deletion could not be identified")
	}

	deleted := make([]calendar.Event, 0, len(found))
	for _, event := range found {
		if err := n.deps.Calendar.DeleteEvent(ctx, n.deps.CalendarID, event.ID); err != nil {
			return pipeline.ServiceFailure("calendar event deletion", err)
		}
		deleted = append(deleted, event)
	}

	slog.Info("Deleted events from calendar", "count", len(deleted))
	return tc.UpdateNode(NodeDeleteExecute, pipeline.NodeResult{
		"response": deleted,
	})
}
