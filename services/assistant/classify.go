package assistant

import (
	"context"
	"log/slog"

	"calendar-assistant/api/services/llm"
	"calendar-assistant/api/services/pipeline"
)

// classifyNode determines which calendar operation the request asks for.
type classifyNode struct {
	deps Deps
}

func (n *classifyNode) Name() string { return NodeClassify }

func (n *classifyNode) Process(ctx context.Context, tc *pipeline.TaskContext) error {
	request, err := requestText(tc)
	if err != nil {
		return err
	}

	var resp ClassifyResponse
	usage, err := n.deps.LLM.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: classifyPrompt},
		{Role: llm.RoleUser, Content: request},
	}, &resp)
	if err != nil {
		return pipeline.ServiceFailure("llm classification", err)
	}

	// Record the classification before deciding: the routing rules and any
	// failure diagnosis read it from the context.
	if err := tc.UpdateNode(NodeClassify, pipeline.NodeResult{
		"response": resp,
		"usage":    usage,
	}); err != nil {
		return err
	}

	if !resp.HasIntent || resp.RequestType == "" {
		return pipeline.ValidationFailure("no clear calendar intent: " + resp.Reasoning)
	}
	if resp.Confidence < n.deps.Confidence {
		return pipeline.ValidationFailure("low confidence in intent classification")
	}

	slog.Info("Intent classified",
		"type", resp.RequestType,
		"confidence", resp.Confidence,
		"bulk", resp.IsBulk)
	return nil
}
