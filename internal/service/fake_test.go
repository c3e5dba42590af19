package service

import (
	"context"
	"sort"

	"prevently/internal/model"
)

// fakeArticles mimics the repository over an in-memory slice.
type fakeArticles struct {
	articles []model.Article
	err      error

	lastSince  int64
	lastDomain string
	lastLimit  int
	lastFrom   *int64
	lastTo     *int64
}

func (f *fakeArticles) sorted() []model.Article {
	out := append([]model.Article(nil), f.articles...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

func (f *fakeArticles) FindByDomain(ctx context.Context, domain string, from, to *int64) ([]model.Article, error) {
	f.lastDomain, f.lastFrom, f.lastTo = domain, from, to
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Article
	for _, a := range f.sorted() {
		if a.Domain != domain {
			continue
		}
		if from != nil && a.Timestamp < *from {
			continue
		}
		if to != nil && a.Timestamp > *to {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeArticles) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := f.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeArticles) Since(ctx context.Context, since int64, domain string) ([]model.Article, error) {
	f.lastSince, f.lastDomain = since, domain
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Article
	for _, a := range f.sorted() {
		if a.Timestamp < since {
			continue
		}
		if domain != "" && a.Domain != domain {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
