package llm

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/go-playground/assert/v2"
)

func TestBuildAnthropicParams(t *testing.T) {
	input := ChatInput{
		Model:  "claude-3-5-haiku-20241022",
		System: "You are Clara.",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
			{Role: RoleUser, Content: "how is tech doing?"},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	}

	params := buildAnthropicParams(input)

	assert.Equal(t, anthropic.Model("claude-3-5-haiku-20241022"), params.Model)
	assert.Equal(t, int64(1024), params.MaxTokens)
	assert.Equal(t, 0.7, params.Temperature.Value)
	assert.Equal(t, 1, len(params.System))
	assert.Equal(t, "You are Clara.", params.System[0].Text)
	assert.Equal(t, 3, len(params.Messages))
	assert.Equal(t, anthropic.MessageParamRoleAssistant, params.Messages[1].Role)
	assert.Equal(t, "how is tech doing?", params.Messages[2].Content[0].OfText.Text)
}

func TestBuildAnthropicParams_NoSystem(t *testing.T) {
	params := buildAnthropicParams(ChatInput{Model: "claude", Messages: []Message{{Role: RoleUser, Content: "x"}}})
	assert.Equal(t, 0, len(params.System))
}
