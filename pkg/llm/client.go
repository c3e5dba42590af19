package llm

import (
	"context"
	"errors"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	ErrNotConfigured = errors.New("llm provider not configured")
	ErrEmptyResponse = errors.New("llm returned no text")
)

type Message struct {
	Role    Role
	Content string
}

type ChatInput struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

type ChatClient interface {
	Chat(ctx context.Context, input ChatInput) (string, error)
}
