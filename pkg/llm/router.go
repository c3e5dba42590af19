package llm

import (
	"context"
	"strings"
)

var openAIModelPrefixes = []string{"gpt-", "chatgpt-", "o1", "o3", "o4"}

// Router sends each request to the provider that serves its model. Either
// provider may be nil when its API key is not configured.
type Router struct {
	Anthropic ChatClient
	OpenAI    ChatClient
}

func (r *Router) Chat(ctx context.Context, input ChatInput) (string, error) {
	client := r.clientFor(input.Model)
	if client == nil {
		return "", ErrNotConfigured
	}
	return client.Chat(ctx, input)
}

func (r *Router) clientFor(model string) ChatClient {
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return r.OpenAI
		}
	}
	return r.Anthropic
}
