// Package assistant implements the natural-language calendar pipeline: the
// graph definition, its nodes, and the routing rules between them.
package assistant

import (
	"log/slog"
	"time"

	"calendar-assistant/api/services/calendar"
	"calendar-assistant/api/services/events"
	"calendar-assistant/api/services/llm"
	"calendar-assistant/api/services/pipeline"
)

// Node identities. Each is both the registry key and the key the node writes
// under in the task context.
const (
	NodeValidate      = "validate"
	NodeClassify      = "classify"
	NodeRoute         = "route"
	NodeCreateExtract = "create_extract"
	NodeCreateExecute = "create_execute"
	NodeLookupExtract = "lookup_extract"
	NodeLookupExecute = "lookup_execute"
	NodeDeleteExecute = "delete_execute"
)

// Deps carries the external collaborators the calendar nodes use.
type Deps struct {
	LLM        llm.Completer
	Calendar   calendar.Service
	CalendarID string
	// Confidence is the minimum score validation and classification must reach.
	Confidence float64
}

// Graph declares the calendar pipeline: validate, classify, route to the
// create chain or the lookup/delete chain. Update and view intents have no
// handler chain yet, so the router falls back to terminating the run.
func Graph() (*pipeline.Graph, error) {
	return pipeline.NewGraph(NodeValidate, []pipeline.NodeSpec{
		{ID: NodeValidate, Successors: []string{NodeClassify},
			Description: "Validate input security and legitimacy"},
		{ID: NodeClassify, Successors: []string{NodeRoute},
			Description: "Classify the calendar operation intent"},
		{ID: NodeRoute, Successors: []string{NodeCreateExtract, NodeLookupExtract}, IsRouter: true,
			Description: "Route to the handler chain for the classified intent"},
		{ID: NodeCreateExtract, Successors: []string{NodeCreateExecute},
			Description: "Extract create-specific event details"},
		{ID: NodeCreateExecute,
			Description: "Create the event in the calendar"},
		{ID: NodeLookupExtract, Successors: []string{NodeLookupExecute},
			Description: "Extract lookup criteria for an existing event"},
		{ID: NodeLookupExecute, Successors: []string{NodeDeleteExecute},
			Description: "Look up events matching the criteria"},
		{ID: NodeDeleteExecute,
			Description: "Delete the matched events from the calendar"},
	})
}

// NewExecutor builds the pipeline executor for the calendar assistant.
func NewExecutor(deps Deps, logger *slog.Logger) (*pipeline.Executor, error) {
	graph, err := Graph()
	if err != nil {
		return nil, err
	}

	registry := pipeline.Registry{
		NodeValidate: func() pipeline.Node { return &validateNode{deps: deps} },
		NodeClassify: func() pipeline.Node { return &classifyNode{deps: deps} },
		NodeRoute: func() pipeline.Node {
			return pipeline.NewRouter(NodeRoute, []pipeline.RoutingRule{
				createRule{},
				deleteRule{},
			}, "")
		},
		NodeCreateExtract: func() pipeline.Node { return &createExtractNode{deps: deps} },
		NodeCreateExecute: func() pipeline.Node { return &createExecuteNode{deps: deps} },
		NodeLookupExtract: func() pipeline.Node { return &lookupExtractNode{deps: deps} },
		NodeLookupExecute: func() pipeline.Node { return &lookupExecuteNode{deps: deps} },
		NodeDeleteExecute: func() pipeline.Node { return &deleteExecuteNode{deps: deps} },
	}

	return pipeline.NewExecutor(graph, registry, logger)
}

// requestText pulls the natural-language request out of the opaque run event.
func requestText(tc *pipeline.TaskContext) (string, error) {
	switch ev := tc.Event.(type) {
	case events.Schema:
		return ev.Request, nil
	case *events.Schema:
		return ev.Request, nil
	}
	return "", pipeline.ValidationFailure("event payload is not a calendar request")
}

// storedResponse fetches the typed response an earlier node recorded.
func storedResponse[T any](tc *pipeline.TaskContext, node string) (T, bool) {
	resp, ok := tc.Nodes[node]["response"].(T)
	return resp, ok
}

// datetimeReference gives the model an anchor for resolving relative dates.
func datetimeReference() (string, string) {
	now := time.Now()
	tz := now.Location().String()
	if tz == "Local" {
		tz, _ = now.Zone()
	}
	return now.Format(time.RFC3339), tz
}
