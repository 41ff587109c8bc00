package assistant

import (
	"context"
	"log/slog"
	"strings"

	"calendar-assistant/api/services/llm"
	"calendar-assistant/api/services/pipeline"
)

// validateNode checks the request for safety and legitimacy before any other
// processing happens.
type validateNode struct {
	deps Deps
}

func (n *validateNode) Name() string { return NodeValidate }

func (n *validateNode) Process(ctx context.Context, tc *pipeline.TaskContext) error {
	request, err := requestText(tc)
	if err != nil {
		return err
	}

	var resp ValidateResponse
	usage, err := n.deps.LLM.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: validatePrompt},
		{Role: llm.RoleUser, Content: request},
	}, &resp)
	if err != nil {
		return pipeline.ServiceFailure("llm validation", err)
	}

	if !resp.IsSafe || !resp.IsValid || resp.Confidence < n.deps.Confidence {
		return pipeline.ValidationFailure(n.failureReason(resp))
	}

	slog.Info("Validation passed", "confidence", resp.Confidence)
	return tc.UpdateNode(NodeValidate, pipeline.NodeResult{
		"response": resp,
		"usage":    usage,
	})
}

func (n *validateNode) failureReason(resp ValidateResponse) string {
	var failures []string
	if !resp.IsSafe {
		failures = append(failures, "security risk: "+strings.Join(resp.RiskFlags, ", "))
	}
	if !resp.IsValid {
		failures = append(failures, "invalid request: "+resp.InvalidReason)
	}
	if resp.Confidence < n.deps.Confidence {
		failures = append(failures, "low confidence")
	}
	return strings.Join(failures, "; ")
}
