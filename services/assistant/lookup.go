package assistant

import (
	"context"
	"log/slog"
	"strings"

	"calendar-assistant/api/services/calendar"
	"calendar-assistant/api/services/llm"
	"calendar-assistant/api/services/pipeline"
)

// lookupExtractNode pulls the search criteria identifying an existing event
// out of the request.
type lookupExtractNode struct {
	deps Deps
}

func (n *lookupExtractNode) Name() string { return NodeLookupExtract }

func (n *lookupExtractNode) Process(ctx context.Context, tc *pipeline.TaskContext) error {
	request, err := requestText(tc)
	if err != nil {
		return err
	}
	classification, _ := storedResponse[ClassifyResponse](tc, NodeClassify)

	datetime, timezone := datetimeReference()
	var resp LookupResponse
	usage, err := n.deps.LLM.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: lookupExtractPrompt(datetime, timezone, classification.IsBulk)},
		{Role: llm.RoleUser, Content: request},
	}, &resp)
	if err != nil {
		return pipeline.ServiceFailure("llm lookup extraction", err)
	}

	if resp.EventID == "" && resp.TimeWindow == nil {
		return pipeline.ValidationFailure("lookup needs an event id or a time window")
	}

	if resp.EventID != "" {
		slog.Info("Extracted lookup criteria", "event_id", resp.EventID)
	} else {
		slog.Info("Extracted lookup criteria",
			"window", resp.TimeWindow.OriginalReference,
			"terms", strings.Join(resp.ContextTerms, ", "))
	}
	return tc.UpdateNode(NodeLookupExtract, pipeline.NodeResult{
		"response": resp,
		"usage":    usage,
	})
}

// lookupExecuteNode finds the calendar events matching the extracted
// criteria. A lookup with zero matches halts the run: there is nothing the
// following executor could act on.
type lookupExecuteNode struct {
	deps Deps
}

func (n *lookupExecuteNode) Name() string { return NodeLookupExecute }

func (n *lookupExecuteNode) Process(ctx context.Context, tc *pipeline.TaskContext) error {
	criteria, ok := storedResponse[LookupResponse](tc, NodeLookupExtract)
	if !ok {
		return pipeline.ValidationFailure("event search criteria could not be extracted from request")
	}

	var found []calendar.Event
	if criteria.EventID != "" {
		event, err := n.deps.Calendar.GetEvent(ctx, n.deps.CalendarID, criteria.EventID)
		if err != nil {
			return pipeline.ServiceFailure("calendar event lookup", err)
		}
		if event != nil {
			found = append(found, *event)
		}
	} else {
		timeMin, timeMax, err := criteria.TimeWindow.Bounds()
		if err != nil {
			return pipeline.ValidationFailure("lookup time window is invalid: " + err.Error())
		}
		found, err = n.deps.Calendar.ListEvents(ctx, n.deps.CalendarID, calendar.ListQuery{
			TimeMin: timeMin,
			TimeMax: timeMax,
			Query:   strings.Join(criteria.ContextTerms, " "),
		})
		if err != nil {
			return pipeline.ServiceFailure("calendar event lookup", err)
		}
	}

	if len(found) == 0 {
		return pipeline.ValidationFailure("event lookup did not find any matching events")
	}

	slog.Info("Found events in calendar", "count", len(found))
	return tc.UpdateNode(NodeLookupExecute, pipeline.NodeResult{
		"response": found,
	})
}
