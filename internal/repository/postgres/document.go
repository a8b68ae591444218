package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DocumentRepository implements domain.DocumentRepository
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// SaveVersion inserts a new document version. Identical content still
// creates a new row; there is no dedup.
func (r *DocumentRepository) SaveVersion(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, created_at, title, content, kind, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		doc.ID,
		doc.CreatedAt,
		doc.Title,
		doc.Content,
		doc.Kind,
		doc.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to save document version: %w", err)
	}
	return nil
}

// ListVersions retrieves all versions of a document, oldest first
func (r *DocumentRepository) ListVersions(ctx context.Context, id uuid.UUID) ([]domain.Document, error) {
	query := `
		SELECT id, created_at, title, content, kind, user_id
		FROM documents
		WHERE id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		var kindStr string
		if err := rows.Scan(&d.ID, &d.CreatedAt, &d.Title, &d.Content, &kindStr, &d.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.Kind = domain.DocumentKind(kindStr)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetCurrent retrieves the version with the maximum created_at for an id
func (r *DocumentRepository) GetCurrent(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query := `
		SELECT id, created_at, title, content, kind, user_id
		FROM documents
		WHERE id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var d domain.Document
	var kindStr string
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CreatedAt, &d.Title, &d.Content, &kindStr, &d.UserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	d.Kind = domain.DocumentKind(kindStr)
	return &d, nil
}
