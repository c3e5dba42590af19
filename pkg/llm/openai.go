package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: &client}
}

func (c *OpenAIClient) Chat(ctx context.Context, input ChatInput) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, buildOpenAIParams(input))
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

func buildOpenAIParams(input ChatInput) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(input.Messages)+1)
	if input.System != "" {
		messages = append(messages, openai.SystemMessage(input.System))
	}
	for _, m := range input.Messages {
		if m.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(input.Model),
		Messages:    messages,
		Temperature: openai.Float(input.Temperature),
		MaxTokens:   openai.Int(int64(input.MaxTokens)),
	}
}
