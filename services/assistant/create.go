package assistant

import (
	"context"
	"log/slog"

	"calendar-assistant/api/services/calendar"
	"calendar-assistant/api/services/llm"
	"calendar-assistant/api/services/pipeline"
)

// createExtractNode pulls the fields of the event to create out of the
// request, normalized against the current datetime.
type createExtractNode struct {
	deps Deps
}

func (n *createExtractNode) Name() string { return NodeCreateExtract }

func (n *createExtractNode) Process(ctx context.Context, tc *pipeline.TaskContext) error {
	request, err := requestText(tc)
	if err != nil {
		return err
	}

	datetime, timezone := datetimeReference()
	var resp CreateResponse
	usage, err := n.deps.LLM.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: createExtractPrompt(datetime, timezone)},
		{Role: llm.RoleUser, Content: request},
	}, &resp)
	if err != nil {
		return pipeline.ServiceFailure("llm extraction", err)
	}

	if resp.Summary == "" {
		return pipeline.ValidationFailure("extracted event has no summary")
	}
	if _, err := resp.Start.Parse(); err != nil {
		return pipeline.ValidationFailure("extracted start time is invalid: " + err.Error())
	}
	if _, err := resp.End.Parse(); err != nil {
		return pipeline.ValidationFailure("extracted end time is invalid: " + err.Error())
	}

	slog.Info("Extracted event details", "summary", resp.Summary)
	if len(resp.ParsingIssues) > 0 {
		slog.Debug("Parsing issues", "issues", resp.ParsingIssues)
	}
	return tc.UpdateNode(NodeCreateExtract, pipeline.NodeResult{
		"response": resp,
		"usage":    usage,
	})
}

// createExecuteNode inserts the extracted event into the calendar.
type createExecuteNode struct {
	deps Deps
}

func (n *createExecuteNode) Name() string { return NodeCreateExecute }

func (n *createExecuteNode) Process(ctx context.Context, tc *pipeline.TaskContext) error {
	extracted, ok := storedResponse[CreateResponse](tc, NodeCreateExtract)
	if !ok {
		return pipeline.ValidationFailure("event details could not be extracted from request")
	}

	attendees := make([]calendar.Attendee, 0, len(extracted.Attendees))
	for _, email := range extracted.Attendees {
		attendees = append(attendees, calendar.Attendee{Email: email})
	}

	created, err := n.deps.Calendar.CreateEvent(ctx, n.deps.CalendarID, calendar.EventRequest{
		Summary:     extracted.Summary,
		Description: extracted.Description,
		Location:    extracted.Location,
		Start:       calendar.EventDateTime{DateTime: extracted.Start.DateTime, TimeZone: extracted.Start.TimeZone},
		End:         calendar.EventDateTime{DateTime: extracted.End.DateTime, TimeZone: extracted.End.TimeZone},
		Attendees:   attendees,
	})
	if err != nil {
		return pipeline.ServiceFailure("calendar event creation", err)
	}

	slog.Info("Created event in calendar", "id", created.ID, "summary", created.Summary)
	return tc.UpdateNode(NodeCreateExecute, pipeline.NodeResult{
		"response": *created,
	})
}
