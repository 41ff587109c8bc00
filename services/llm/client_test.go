package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageFromInfo(t *testing.T) {
	usage := usageFromInfo(map[string]any{
		"PromptTokens":     120,
		"CompletionTokens": int64(45),
		"TotalTokens":      float64(165),
	})

	assert.Equal(t, 120, usage.PromptTokens)
	assert.Equal(t, 45, usage.CompletionTokens)
	assert.Equal(t, 165, usage.TotalTokens)
}

func TestUsageFromInfo_MissingFields(t *testing.T) {
	usage := usageFromInfo(map[string]any{})

	assert.Zero(t, usage.PromptTokens)
	assert.Zero(t, usage.CompletionTokens)
	assert.Zero(t, usage.TotalTokens)
}
