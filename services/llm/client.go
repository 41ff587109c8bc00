// Package llm wraps a structured-output completion provider behind a small
// interface the pipeline nodes consume.
package llm

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Message roles accepted by Complete.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged prompt message.
type Message struct {
	Role    string
	Content string
}

// Usage reports token consumption for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completer produces a structured completion: the model's JSON answer is
// parsed into out. Implementations return an error on transport failure or
// when the answer does not match the expected shape.
type Completer interface {
	Complete(ctx context.Context, messages []Message, out any) (Usage, error)
}

// Config selects the model and endpoint for the OpenAI-compatible client.
type Config struct {
	Model   string
	Token   string
	BaseURL string // optional; empty means the provider default
}

// Client calls an OpenAI-compatible chat completion API in JSON mode.
type Client struct {
	model llms.Model
}

// NewClient builds the completion client from config.
func NewClient(cfg Config) (*Client, error) {
	opts := []openai.Option{openai.WithModel(cfg.Model)}
	if cfg.Token != "" {
		opts = append(opts, openai.WithToken(cfg.Token))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create completion client: %w", err)
	}
	return &Client{model: model}, nil
}

// Complete sends the messages, forces a JSON-mode answer, and unmarshals it
// into out.
func (c *Client) Complete(ctx context.Context, messages []Message, out any) (Usage, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := schema.ChatMessageTypeHuman
		if m.Role == RoleSystem {
			role = schema.ChatMessageTypeSystem
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	resp, err := c.model.GenerateContent(ctx, content,
		llms.WithJSONMode(),
		llms.WithTemperature(0),
	)
	if err != nil {
		return Usage{}, fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Usage{}, fmt.Errorf("completion returned no choices")
	}

	choice := resp.Choices[0]
	if err := json.Unmarshal([]byte(choice.Content), out); err != nil {
		return Usage{}, fmt.Errorf("parse structured response: %w", err)
	}
	return usageFromInfo(choice.GenerationInfo), nil
}

func usageFromInfo(info map[string]any) Usage {
	return Usage{
		PromptTokens:     intFrom(info["PromptTokens"]),
		CompletionTokens: intFrom(info["CompletionTokens"]),
		TotalTokens:      intFrom(info["TotalTokens"]),
	}
}

func intFrom(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
