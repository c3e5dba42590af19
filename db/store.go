package db

import (
	"context"
	"fmt"

	"prevently/internal/config"
	"prevently/internal/docstore"
)

// OpenStore connects the document store selected by cfg.Store.Backend.
func OpenStore(ctx context.Context, cfg config.Config) (docstore.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFirestore, "":
		client, err := ConnectFirestore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
		if err != nil {
			return nil, err
		}
		return docstore.NewFirestoreStore(client), nil

	case config.BackendPostgres:
		conn, err := OpenPostgres(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return sqlStore(ctx, docstore.NewSQLStore(conn, docstore.Postgres))

	case config.BackendSQLite:
		conn, err := OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return sqlStore(ctx, docstore.NewSQLStore(conn, docstore.SQLite))

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func sqlStore(ctx context.Context, store *docstore.SQLStore) (docstore.Store, error) {
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
