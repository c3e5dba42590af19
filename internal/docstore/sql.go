package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const documentsTable = "documents"

// Dialect captures how a SQL engine stores JSON documents and extracts
// fields from them.
type Dialect struct {
	Name        string
	placeholder sq.PlaceholderFormat
	schema      string
	textField   func(field string) string
	numberField func(field string) string
	orderField  func(field string) string
}

var Postgres = Dialect{
	Name:        "postgres",
	placeholder: sq.Dollar,
	schema: `CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data JSONB NOT NULL,
		PRIMARY KEY (collection, id)
	)`,
	textField:   func(f string) string { return fmt.Sprintf("data->>'%s'", f) },
	numberField: func(f string) string { return fmt.Sprintf("(data->>'%s')::double precision", f) },
	orderField:  func(f string) string { return fmt.Sprintf("data->'%s'", f) },
}

var SQLite = Dialect{
	Name:        "sqlite",
	placeholder: sq.Question,
	schema: `CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	)`,
	textField:   func(f string) string { return fmt.Sprintf("json_extract(data, '$.%s')", f) },
	numberField: func(f string) string { return fmt.Sprintf("json_extract(data, '$.%s')", f) },
	orderField:  func(f string) string { return fmt.Sprintf("json_extract(data, '$.%s')", f) },
}

// SQLStore keeps every collection in one table of JSON documents. It backs
// local development and tests; production reads go to Firestore.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (s *SQLStore) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(s.dialect.placeholder)
}

func (s *SQLStore) buildQuery(q Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	b := s.builder().
		Select("id", "data").
		From(documentsTable).
		Where(sq.Eq{"collection": q.Collection})

	for _, f := range q.Filters {
		var column string
		switch f.Value.(type) {
		case string:
			column = s.dialect.textField(f.Field)
		case int, int32, int64, float32, float64:
			column = s.dialect.numberField(f.Field)
		default:
			return "", nil, fmt.Errorf("query: unsupported value type %T for field %s", f.Value, f.Field)
		}

		op := string(f.Op)
		if f.Op == OpEqual {
			op = "="
		}
		b = b.Where(fmt.Sprintf("%s %s ?", column, op), f.Value)
	}

	if q.OrderBy != nil {
		dir := "ASC"
		if q.OrderBy.Direction == Desc {
			dir = "DESC"
		}
		b = b.OrderBy(fmt.Sprintf("%s %s", s.dialect.orderField(q.OrderBy.Field), dir))
	}

	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}

	return b.ToSql()
}

func (s *SQLStore) Query(ctx context.Context, q Query) ([]Document, error) {
	query, args, err := s.buildQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", q.Collection, err)
		}

		data, err := decodeData(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", q.Collection, id, err)
		}
		docs = append(docs, Document{ID: id, Data: data})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", q.Collection, err)
	}

	return docs, nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	query, args, err := s.builder().
		Select("data").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	data, err := decodeData(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}

	return &Document{ID: id, Data: data}, nil
}

func (s *SQLStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	if merge {
		existing, err := s.Get(ctx, collection, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if existing != nil {
			merged := existing.Data
			for k, v := range data {
				merged[k] = v
			}
			data = merged
		}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}

	query, args, err := s.builder().
		Insert(documentsTable).
		Columns("collection", "id", "data").
		Values(collection, id, string(raw)).
		Suffix("ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}

	return nil
}

func (s *SQLStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		// sub-collections are not top-level collections
		if strings.Contains(name, "/") {
			continue
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func decodeData(raw []byte) (map[string]any, error) {
	data := map[string]any{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}
