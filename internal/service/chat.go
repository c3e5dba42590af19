package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"prevently/internal/prompt"
	"prevently/internal/sentiment"
	"prevently/pkg/llm"
)

const (
	DefaultChatModel       = "claude-3-5-haiku-20241022"
	DefaultChatTemperature = 0.7
	DefaultChatMaxTokens   = 1024

	recentNewsCount      = 5
	summaryDays          = 7
	maxHistoryMessages   = 10
	recentNewsKey        = "recent_news"
	sentimentAnalyticKey = "sentiment_analytics"

	recentNewsUnavailable = "Unable to fetch recent news."
	analyticsUnavailable  = "Unable to fetch sentiment analytics."
)

var ErrEmptyMessage = errors.New("message is required")

// ChatContext renders the news and analytics blocks injected into the
// system prompt.
type ChatContext struct {
	news      *NewsService
	analytics *AnalyticsService
}

func NewChatContext(news *NewsService, analytics *AnalyticsService) *ChatContext {
	return &ChatContext{news: news, analytics: analytics}
}

func (c *ChatContext) RecentNews(ctx context.Context, n int) string {
	articles, err := c.news.Latest(ctx, n)
	if err != nil {
		slog.Warn("chat context: recent news unavailable", "error", err)
		return recentNewsUnavailable
	}

	var sb strings.Builder
	sb.WriteString("Recent News Articles:\n")
	for i, a := range articles {
		companies := "No specific companies"
		if len(a.Companies) > 0 {
			companies = strings.Join(a.Companies, ", ")
		}
		fmt.Fprintf(&sb, "%d. %s (Domain: %s, Sentiment: %s, Companies: %s)\n",
			i+1, a.Title, a.Domain, sentiment.Classify(a.SentimentNumeric), companies)
	}
	return sb.String()
}

func (c *ChatContext) AnalyticsSummary(ctx context.Context, days int) string {
	summary, err := c.analytics.Summary(ctx, days)
	if err != nil {
		slog.Warn("chat context: analytics unavailable", "error", err)
		return analyticsUnavailable
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Sentiment Analytics Summary (Last %d days):\n", summary.Days)
	fmt.Fprintf(&sb, "Total articles analyzed: %d\n", summary.TotalCount)
	if summary.TotalCount > 0 {
		fmt.Fprintf(&sb, "Overall average sentiment: %.3f (%s)\n", summary.Average, sentiment.Classify(summary.Average))
	}

	sb.WriteString("\nSentiment by domain:\n")
	for _, d := range summary.DomainScores {
		fmt.Fprintf(&sb, "- %s: %d articles, avg sentiment %.3f (%s)\n",
			d.Domain, d.ArticleCount, d.Average, sentiment.Classify(d.Average))
	}
	return sb.String()
}

// HistoryEntry is one prior turn as sent by the dashboard.
type HistoryEntry struct {
	Sender  string
	Content string
}

type ChatRequest struct {
	Message          string
	History          []HistoryEntry
	Model            string
	SystemPrompt     string
	Temperature      *float64
	MaxTokens        *int
	ContextVariables map[string]any
}

type ChatService struct {
	context  *ChatContext
	llm      llm.ChatClient
	template string
}

func NewChatService(chatContext *ChatContext, client llm.ChatClient, template string) *ChatService {
	return &ChatService{context: chatContext, llm: client, template: template}
}

// SystemPrompt renders the template with the caller's variables. The
// recent_news and sentiment_analytics keys are always recomputed and win over
// caller-supplied values.
func (s *ChatService) SystemPrompt(ctx context.Context, req ChatRequest) string {
	template := s.template
	if req.SystemPrompt != "" {
		template = req.SystemPrompt
	}

	vars := make(map[string]string, len(req.ContextVariables)+2)
	for k, v := range req.ContextVariables {
		vars[k] = prompt.Stringify(v)
	}
	vars[recentNewsKey] = s.context.RecentNews(ctx, recentNewsCount)
	vars[sentimentAnalyticKey] = s.context.AnalyticsSummary(ctx, summaryDays)

	return prompt.Render(template, vars)
}

func (s *ChatService) Reply(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrEmptyMessage
	}

	input := llm.ChatInput{
		Model:       req.Model,
		System:      s.SystemPrompt(ctx, req),
		Messages:    buildMessages(req.History, req.Message),
		Temperature: DefaultChatTemperature,
		MaxTokens:   DefaultChatMaxTokens,
	}
	if input.Model == "" {
		input.Model = DefaultChatModel
	}
	if req.Temperature != nil {
		input.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		input.MaxTokens = *req.MaxTokens
	}

	return s.llm.Chat(ctx, input)
}

func buildMessages(history []HistoryEntry, message string) []llm.Message {
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, h := range history {
		role := llm.RoleAssistant
		if h.Sender == "user" {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: h.Content})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: message})
}
