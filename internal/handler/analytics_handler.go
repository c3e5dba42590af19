package handler

import (
	"context"
	"log/slog"
	"net/http"

	"prevently/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsReader interface {
	Daily(ctx context.Context, days int, domain string) ([]service.DailySentiment, error)
}

type AnalyticsHandler struct {
	analytics AnalyticsReader
}

func NewAnalyticsHandler(analytics AnalyticsReader) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) GetSentimentAnalytics(c *gin.Context) {
	days := getQueryInt("days", service.DefaultAnalyticsDays, c)
	domain := c.Query("domain")

	series, err := h.analytics.Daily(c.Request.Context(), days, domain)
	if err != nil {
		slog.Error("error fetching sentiment analytics", "error", err, "days", days, "domain", domain)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch sentiment analytics"})
		return
	}

	res := AnalyticsResponse{Analytics: make([]DailySentimentResponse, 0, len(series))}
	for _, d := range series {
		res.Analytics = append(res.Analytics, DailySentimentResponse{
			Date:         d.Date,
			Sentiment:    d.Sentiment,
			ArticleCount: d.ArticleCount,
		})
	}

	c.JSON(http.StatusOK, res)
}
