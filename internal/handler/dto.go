package handler

import (
	"prevently/internal/model"
	"prevently/internal/service"
)

type ArticleResponse struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Domain            string         `json:"domain"`
	Source            string         `json:"source"`
	SourceURL         string         `json:"source_url"`
	Companies         []string       `json:"companies"`
	SentimentNumeric  float64        `json:"sentiment_numeric"`
	SentimentResult   map[string]any `json:"sentiment_result"`
	SentimentSublabel string         `json:"sentiment_sublabel"`
	Timestamp         int64          `json:"timestamp"`
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type NewsResponse struct {
	Articles   []ArticleResponse  `json:"articles"`
	Pagination PaginationResponse `json:"pagination"`
}

type LatestNewsResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

type DailySentimentResponse struct {
	Date         string  `json:"date"`
	Sentiment    float64 `json:"sentiment"`
	ArticleCount int     `json:"article_count"`
}

type AnalyticsResponse struct {
	Analytics []DailySentimentResponse `json:"analytics"`
}

type DomainResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DomainsResponse struct {
	Domains []DomainResponse `json:"domains"`
}

type ChatMessageRequest struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string               `json:"message"`
	ConversationHistory []ChatMessageRequest `json:"conversation_history"`
	Model               string               `json:"model"`
	SystemPrompt        string               `json:"system_prompt"`
	Temperature         *float64             `json:"temperature"`
	MaxTokens           *int                 `json:"max_tokens"`
	ContextVariables    map[string]any       `json:"context_variables"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ImageResponse struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

func toArticleResponse(a model.Article) ArticleResponse {
	companies := a.Companies
	if companies == nil {
		companies = []string{}
	}
	return ArticleResponse{
		ID:                a.ID,
		Title:             a.Title,
		Description:       a.Description,
		Domain:            a.Domain,
		Source:            a.Source,
		SourceURL:         a.SourceURL,
		Companies:         companies,
		SentimentNumeric:  a.SentimentNumeric,
		SentimentResult:   a.SentimentResult,
		SentimentSublabel: a.SentimentSublabel,
		Timestamp:         a.Timestamp,
	}
}

func toArticleResponses(articles []model.Article) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, toArticleResponse(a))
	}
	return res
}

func toPaginationResponse(p service.Pagination) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func (r ChatRequest) toService() service.ChatRequest {
	history := make([]service.HistoryEntry, 0, len(r.ConversationHistory))
	for _, m := range r.ConversationHistory {
		history = append(history, service.HistoryEntry{Sender: m.Sender, Content: m.Content})
	}
	return service.ChatRequest{
		Message:          r.Message,
		History:          history,
		Model:            r.Model,
		SystemPrompt:     r.SystemPrompt,
		Temperature:      r.Temperature,
		MaxTokens:        r.MaxTokens,
		ContextVariables: r.ContextVariables,
	}
}
