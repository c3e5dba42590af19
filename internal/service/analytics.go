package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"prevently/internal/model"
	"prevently/internal/sentiment"
)

const (
	DefaultAnalyticsDays = 30
	MaxAnalyticsDays     = 3650
	dayMillis            = int64(24 * time.Hour / time.Millisecond)
	dateLayout           = "2006-01-02"
	allDomains           = "all"
)

var ErrAnalyticsUnavailable = errors.New("failed to fetch sentiment analytics")

type ArticleWindowFinder interface {
	Since(ctx context.Context, since int64, domain string) ([]model.Article, error)
}

type DailySentiment struct {
	Date         string
	Sentiment    float64
	ArticleCount int
}

type DomainSentiment struct {
	Domain       string
	ArticleCount int
	Average      float64
}

type SentimentSummary struct {
	Days         int
	TotalCount   int
	Average      float64
	DomainScores []DomainSentiment
}

type AnalyticsService struct {
	articles ArticleWindowFinder
	location *time.Location
	now      func() time.Time
}

func NewAnalyticsService(articles ArticleWindowFinder, location *time.Location) *AnalyticsService {
	if location == nil {
		location = time.Local
	}
	return &AnalyticsService{articles: articles, location: location, now: time.Now}
}

// clampDays maps a non-positive window to the default and caps long ones.
func clampDays(days int) int {
	if days < 1 {
		return DefaultAnalyticsDays
	}
	if days > MaxAnalyticsDays {
		return MaxAnalyticsDays
	}
	return days
}

func (s *AnalyticsService) window(ctx context.Context, days int, domain string) ([]model.Article, error) {
	if domain == allDomains {
		domain = ""
	}
	since := s.now().UnixMilli() - int64(days)*dayMillis
	return s.articles.Since(ctx, since, domain)
}

// Daily buckets the window by local calendar date and returns one entry per
// day in ascending date order.
func (s *AnalyticsService) Daily(ctx context.Context, days int, domain string) ([]DailySentiment, error) {
	days = clampDays(days)

	articles, err := s.window(ctx, days, domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyticsUnavailable, err)
	}

	byDate := make(map[string][]float64)
	for _, a := range articles {
		date := time.UnixMilli(a.Timestamp).In(s.location).Format(dateLayout)
		byDate[date] = append(byDate[date], a.SentimentNumeric)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]DailySentiment, 0, len(dates))
	for _, d := range dates {
		scores := byDate[d]
		series = append(series, DailySentiment{
			Date:         d,
			Sentiment:    sentiment.Round3(sentiment.Mean(scores)),
			ArticleCount: len(scores),
		})
	}

	return series, nil
}

// Summary aggregates the whole window and each domain in it. Averages are
// not rounded; callers format them.
func (s *AnalyticsService) Summary(ctx context.Context, days int) (*SentimentSummary, error) {
	days = clampDays(days)

	articles, err := s.window(ctx, days, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyticsUnavailable, err)
	}

	all := make([]float64, 0, len(articles))
	byDomain := make(map[string][]float64)
	for _, a := range articles {
		domain := a.Domain
		if domain == "" {
			domain = model.UnknownDomain
		}
		byDomain[domain] = append(byDomain[domain], a.SentimentNumeric)
		all = append(all, a.SentimentNumeric)
	}

	domains := make([]string, 0, len(byDomain))
	for d := range byDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	summary := &SentimentSummary{
		Days:         days,
		TotalCount:   len(all),
		Average:      sentiment.Mean(all),
		DomainScores: make([]DomainSentiment, 0, len(domains)),
	}
	for _, d := range domains {
		summary.DomainScores = append(summary.DomainScores, DomainSentiment{
			Domain:       d,
			ArticleCount: len(byDomain[d]),
			Average:      sentiment.Mean(byDomain[d]),
		})
	}

	return summary, nil
}
