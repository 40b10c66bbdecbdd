// Package pg persists workflow documents as JSONB rows in Postgres, for
// hosts that share one document library across several server instances.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/comfygraph/comfygraph/model"
	"github.com/comfygraph/comfygraph/service/dao/document"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the table this store expects; hosts apply it with their own
// migration tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS workflow_documents (
    location   TEXT PRIMARY KEY,
    document   JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Service is a Postgres-backed document store.
type Service struct {
	pool *pgxpool.Pool
}

// New creates a Postgres document store over an existing connection pool.
func New(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// Load reads and parses the document stored under the given location key.
func (s *Service) Load(ctx context.Context, location string) (*model.Document, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `
		SELECT document
		FROM workflow_documents
		WHERE location = $1
	`, location).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", document.ErrNotFound, location)
		}
		return nil, fmt.Errorf("failed to load workflow document %s: %w", location, err)
	}
	doc, err := model.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow document %s: %w", location, err)
	}
	return doc, nil
}

// Save upserts the document under the given location key.
func (s *Service) Save(ctx context.Context, location string, doc *model.Document) error {
	data, err := doc.JSON()
	if err != nil {
		return fmt.Errorf("failed to encode workflow document: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO workflow_documents (location, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (location) DO UPDATE
		SET document = EXCLUDED.document, updated_at = now()
	`, location, data)
	if err != nil {
		return fmt.Errorf("failed to save workflow document %s: %w", location, err)
	}
	return nil
}
