package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DocumentStore defines the interface for document bookkeeping operations.
type DocumentStore interface {
	// GetByPath looks a document up by its source path. Returns ErrNotFound
	// if the path has never been ingested.
	GetByPath(ctx context.Context, path string) (*Document, error)
	// Upsert inserts the document or, if the path already exists, replaces
	// its type and hash and refreshes indexed_at.
	Upsert(ctx context.Context, doc *Document) error
	// ListAll returns every ingested document.
	ListAll(ctx context.Context) ([]Document, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByPath looks a document up by its source path.
func (r *DocumentRepo) GetByPath(ctx context.Context, path string) (*Document, error) {
	var doc Document
	err := r.db.QueryRowContext(ctx,
		"SELECT id, path, doc_type, hash, indexed_at FROM documents WHERE path = ?",
		path,
	).Scan(&doc.ID, &doc.Path, &doc.DocType, &doc.Hash, &doc.IndexedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return &doc, nil
}

// Upsert inserts or updates a document keyed by path.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, path, doc_type, hash) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET doc_type = excluded.doc_type, hash = excluded.hash, indexed_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.Path, doc.DocType, doc.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// ListAll returns every ingested document.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, path, doc_type, hash, indexed_at FROM documents ORDER BY path",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.DocType, &doc.Hash, &doc.IndexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}
