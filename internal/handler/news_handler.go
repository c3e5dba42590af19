package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"prevently/internal/model"
	"prevently/internal/sentiment"
	"prevently/internal/service"

	"github.com/gin-gonic/gin"
)

type NewsReader interface {
	ByDomain(ctx context.Context, q service.NewsQuery) (*service.NewsPage, error)
	Latest(ctx context.Context, limit int) ([]model.Article, error)
}

type NewsHandler struct {
	news NewsReader
}

func NewNewsHandler(news NewsReader) *NewsHandler {
	return &NewsHandler{news: news}
}

func (h *NewsHandler) GetNewsByDomain(c *gin.Context) {
	domain := c.Param("domain")

	filter, err := sentiment.ParseFilter(c.Query("sentiment_filter"))
	if err != nil {
		slog.Warn("invalid sentiment filter", "value", c.Query("sentiment_filter"))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "sentiment_filter must be one of all, positive, neutral, negative"})
		return
	}

	page, err := h.news.ByDomain(c.Request.Context(), service.NewsQuery{
		Domain:          domain,
		Page:            getQueryInt("page", service.DefaultPage, c),
		Limit:           getQueryInt("limit", service.DefaultLimit, c),
		SentimentFilter: filter,
		DateFrom:        getQueryInt64("date_from", c),
		DateTo:          getQueryInt64("date_to", c),
	})
	if err != nil {
		slog.Error("error fetching news", "error", err, "domain", domain)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch news articles"})
		return
	}

	c.JSON(http.StatusOK, NewsResponse{
		Articles:   toArticleResponses(page.Articles),
		Pagination: toPaginationResponse(page.Pagination),
	})
}

func (h *NewsHandler) GetLatestNews(c *gin.Context) {
	raw := c.Param("limit")

	limit, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid latest news limit", "limit", raw, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be an integer"})
		return
	}

	articles, err := h.news.Latest(c.Request.Context(), limit)
	if err != nil {
		slog.Error("error fetching latest news", "error", err, "limit", limit)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch latest news"})
		return
	}

	c.JSON(http.StatusOK, LatestNewsResponse{Articles: toArticleResponses(articles)})
}
