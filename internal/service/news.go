package service

import (
	"context"
	"errors"
	"fmt"

	"prevently/internal/model"
	"prevently/internal/sentiment"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 50
)

var ErrNewsUnavailable = errors.New("failed to fetch news articles")

type ArticleFinder interface {
	FindByDomain(ctx context.Context, domain string, from, to *int64) ([]model.Article, error)
	Latest(ctx context.Context, limit int) ([]model.Article, error)
}

type NewsQuery struct {
	Domain          string
	Page            int
	Limit           int
	SentimentFilter sentiment.Filter
	DateFrom        *int64
	DateTo          *int64
}

type Pagination struct {
	Page       int
	Limit      int
	TotalCount int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type NewsPage struct {
	Articles   []model.Article
	Pagination Pagination
}

func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NewPagination expects page and limit to be clamped already.
func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type NewsService struct {
	articles ArticleFinder
}

func NewNewsService(articles ArticleFinder) *NewsService {
	return &NewsService{articles: articles}
}

// ByDomain reads every matching article and pages through them in memory,
// since the sentiment bucket is not a stored field.
func (s *NewsService) ByDomain(ctx context.Context, q NewsQuery) (*NewsPage, error) {
	page := ClampPage(q.Page)
	limit := ClampLimit(q.Limit)

	articles, err := s.articles.FindByDomain(ctx, q.Domain, q.DateFrom, q.DateTo)
	if err != nil {
		return nil, fmt.Errorf("%w: domain %s: %v", ErrNewsUnavailable, q.Domain, err)
	}

	filtered := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if q.SentimentFilter.Matches(a.SentimentNumeric) {
			filtered = append(filtered, a)
		}
	}

	return &NewsPage{
		Articles:   pageSlice(filtered, page, limit),
		Pagination: NewPagination(page, limit, len(filtered)),
	}, nil
}

// pageSlice returns the page-th window of limit articles. Pages past the end
// are empty; the bound is checked before multiplying so huge pages cannot
// overflow the offset.
func pageSlice(articles []model.Article, page, limit int) []model.Article {
	if page-1 >= (len(articles)+limit-1)/limit {
		return articles[len(articles):]
	}
	offset := (page - 1) * limit
	end := offset + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[offset:end]
}

func (s *NewsService) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	articles, err := s.articles.Latest(ctx, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: latest: %v", ErrNewsUnavailable, err)
	}
	return articles, nil
}
