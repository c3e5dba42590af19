package repository

import (
	"context"

	"prevently/internal/docstore"
	"prevently/internal/model"
)

type ArticleRepository struct {
	store docstore.Store
}

func NewArticleRepository(store docstore.Store) *ArticleRepository {
	return &ArticleRepository{store: store}
}

// FindByDomain returns every article of a domain, newest first. Either time
// bound may be nil.
func (r *ArticleRepository) FindByDomain(ctx context.Context, domain string, from, to *int64) ([]model.Article, error) {
	q := docstore.NewQuery(model.NewsCollection).Where("domain", docstore.OpEqual, domain)

	if from != nil {
		q = q.Where("timestamp", docstore.OpGreaterEqual, *from)
	}
	if to != nil {
		q = q.Where("timestamp", docstore.OpLessEqual, *to)
	}

	return r.query(ctx, q.Order("timestamp", docstore.Desc))
}

func (r *ArticleRepository) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	q := docstore.NewQuery(model.NewsCollection).
		Order("timestamp", docstore.Desc).
		WithLimit(limit)

	return r.query(ctx, q)
}

// Since returns articles with timestamp >= since, newest first. An empty
// domain matches every domain.
func (r *ArticleRepository) Since(ctx context.Context, since int64, domain string) ([]model.Article, error) {
	q := docstore.NewQuery(model.NewsCollection).Where("timestamp", docstore.OpGreaterEqual, since)
	if domain != "" {
		q = q.Where("domain", docstore.OpEqual, domain)
	}

	return r.query(ctx, q.Order("timestamp", docstore.Desc))
}

func (r *ArticleRepository) query(ctx context.Context, q docstore.Query) ([]model.Article, error) {
	docs, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(docs))
	for _, d := range docs {
		articles = append(articles, model.NewArticle(d.ID, d.Data))
	}

	return articles, nil
}
