package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prevently/internal/model"

	"github.com/go-playground/assert/v2"
)

func techArticles() []model.Article {
	return []model.Article{
		{ID: "a1", Title: "Up", Domain: "tech", Timestamp: 100, SentimentNumeric: 0.5, Companies: []string{"ACME"}},
		{ID: "a2", Title: "Down", Domain: "tech", Timestamp: 200, SentimentNumeric: -0.5},
		{ID: "a3", Title: "Flat", Domain: "tech", Timestamp: 300, SentimentNumeric: 0.0},
		{ID: "b1", Title: "Bank", Domain: "finance", Timestamp: 400, SentimentNumeric: 0.2},
	}
}

func TestGetNewsByDomain_PositiveFilter(t *testing.T) {
	d := newTestDeps()
	d.articles.articles = techArticles()
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/tech?sentiment_filter=positive&page=1&limit=20", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, "a1", res.Articles[0].ID)
	assert.Equal(t, int64(100), res.Articles[0].Timestamp)
	assert.Equal(t, []string{"ACME"}, res.Articles[0].Companies)
	assert.Equal(t, 1, res.Pagination.TotalCount)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	assert.Equal(t, false, res.Pagination.HasNext)
	assert.Equal(t, false, res.Pagination.HasPrev)
}

func TestGetNewsByDomain_DefaultsAndClamp(t *testing.T) {
	d := newTestDeps()
	d.articles.articles = techArticles()
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/tech?limit=500&page=-3", nil)
	r.ServeHTTP(w, req)

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 50, res.Pagination.Limit)
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 3, len(res.Articles))
	assert.Equal(t, "a3", res.Articles[0].ID)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/news/tech?limit=abc", nil)
	r.ServeHTTP(w, req)

	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, res.Pagination.Limit)
}

func TestGetNewsByDomain_DateRange(t *testing.T) {
	d := newTestDeps()
	d.articles.articles = techArticles()
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/tech?date_from=150&date_to=300", nil)
	r.ServeHTTP(w, req)

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res.Articles))
	assert.Equal(t, "a3", res.Articles[0].ID)
	assert.Equal(t, "a2", res.Articles[1].ID)
}

func TestGetNewsByDomain_EmptyPage(t *testing.T) {
	d := newTestDeps()
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/tech?page=3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"articles":[]`))

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, res.Pagination.TotalPages)
	assert.Equal(t, false, res.Pagination.HasNext)
	assert.Equal(t, true, res.Pagination.HasPrev)
}

func TestGetNewsByDomain_InvalidSentimentFilter(t *testing.T) {
	r := newTestRouter(newTestDeps())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/tech?sentiment_filter=happy", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNewsByDomain_StoreError(t *testing.T) {
	d := newTestDeps()
	d.articles.err = errors.New("firestore: permission denied on project x")
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/tech", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"detail":"Failed to fetch news articles"}`, w.Body.String())
}

func TestGetLatestNews(t *testing.T) {
	d := newTestDeps()
	d.articles.articles = techArticles()
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/latest/2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res LatestNewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res.Articles))
	assert.Equal(t, "b1", res.Articles[0].ID)
	assert.Equal(t, "a3", res.Articles[1].ID)
}

func TestGetLatestNews_ClampsAndRejects(t *testing.T) {
	d := newTestDeps()
	d.articles.articles = techArticles()
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news/latest/0", nil)
	r.ServeHTTP(w, req)

	var res LatestNewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.Articles))

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/news/latest/many", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewsRoutesUnderAuthAlias(t *testing.T) {
	d := newTestDeps()
	d.articles.articles = techArticles()
	r := newTestRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/news/finance", nil)
	r.ServeHTTP(w, req)

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, "b1", res.Articles[0].ID)
}
