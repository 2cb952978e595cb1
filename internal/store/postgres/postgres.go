// Package postgres stores documents as JSONB rows in a single documents
// table, keyed by collection.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"

	"github.com/joao-fontenele/logistics-erp-api/internal/store"
)

type Store struct {
	db   *sql.DB
	name string
}

func New(db *sql.DB, name string) *Store {
	return &Store{db: db, name: name}
}

func (s *Store) Insert(ctx context.Context, collection string, doc map[string]any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := uuid.New().String()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, collection, body, created_at)
		VALUES ($1, $2, $3, NOW())
	`, id, collection, body)
	if err != nil {
		return "", classify(err)
	}

	return id, nil
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT collection
		FROM documents
		ORDER BY collection
	`)
	if err != nil {
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

// Get loads a stored document body, returning nil when it does not exist.
func (s *Store) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT body
		FROM documents
		WHERE id = $1 AND collection = $2
	`, id, collection).Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classify(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func (s *Store) Name() string {
	return s.name
}

func classify(err error) error {
	var netErr *net.OpError
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}
