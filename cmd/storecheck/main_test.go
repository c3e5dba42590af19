package main

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"prevently/internal/docstore"
	"prevently/internal/repository"
	"prevently/internal/service"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *docstore.SQLStore {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)

	store := docstore.NewSQLStore(conn, docstore.SQLite)
	require.NoError(t, store.EnsureSchema(context.Background()))
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	now := time.Now().UnixMilli()
	require.NoError(t, store.Set(ctx, "domains", "technology", map[string]any{"name": "Technology"}, false))
	require.NoError(t, store.Set(ctx, "domains", "finance", map[string]any{"name": "Finance"}, false))
	require.NoError(t, store.Set(ctx, "news_datastore", "a1", map[string]any{"title": "A", "domain": "technology", "timestamp": now - 1000, "sentiment_numeric": 0.4}, false))
	require.NoError(t, store.Set(ctx, "news_datastore", "a2", map[string]any{"title": "B", "domain": "finance", "timestamp": now - 2000, "sentiment_numeric": 0.2}, false))
	return store
}

func TestPrintCollections(t *testing.T) {
	store := seededStore(t)
	var out bytes.Buffer

	require.NoError(t, printCollections(context.Background(), store, &out))
	require.Contains(t, out.String(), "Collections (2):")
	require.Contains(t, out.String(), "news_datastore: 2 documents sampled (limit 5)")
	require.Contains(t, out.String(), "domains: 2 documents sampled (limit 5)")
}

func TestPrintDomains(t *testing.T) {
	store := seededStore(t)
	var out bytes.Buffer

	require.NoError(t, printDomains(context.Background(), repository.NewDomainRepository(store), &out))
	require.Equal(t, "finance\tFinance\ntechnology\tTechnology\n2 domains\n", out.String())
}

func TestPrintAnalytics(t *testing.T) {
	store := seededStore(t)
	svc := service.NewAnalyticsService(repository.NewArticleRepository(store), time.UTC)
	var out bytes.Buffer

	require.NoError(t, printAnalytics(context.Background(), svc, 7, "technology", &out))
	require.Contains(t, out.String(), "0.400\t1\n")
	require.Contains(t, out.String(), "1 days with articles")
}
