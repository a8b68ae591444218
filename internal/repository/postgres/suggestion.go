package postgres

import (
	"context"
	"fmt"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/uuid"
)

// SuggestionRepository implements domain.SuggestionRepository
type SuggestionRepository struct {
	db *DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// SaveAll inserts a batch of suggestions in one transaction
func (r *SuggestionRepository) SaveAll(ctx context.Context, suggestions []domain.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO suggestions
			(id, document_id, document_created_at, original_text, suggested_text, description, is_resolved, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, s := range suggestions {
		if _, err := tx.Exec(ctx, query,
			s.ID,
			s.DocumentID,
			s.DocumentCreatedAt,
			s.OriginalText,
			s.SuggestedText,
			s.Description,
			s.IsResolved,
			s.UserID,
			s.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to save suggestion: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit suggestions: %w", err)
	}
	return nil
}

// ListByDocument retrieves suggestions for a document id, oldest first
func (r *SuggestionRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Suggestion, error) {
	query := `
		SELECT id, document_id, document_created_at, original_text, suggested_text, description, is_resolved, user_id, created_at
		FROM suggestions
		WHERE document_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []domain.Suggestion
	for rows.Next() {
		var s domain.Suggestion
		if err := rows.Scan(
			&s.ID,
			&s.DocumentID,
			&s.DocumentCreatedAt,
			&s.OriginalText,
			&s.SuggestedText,
			&s.Description,
			&s.IsResolved,
			&s.UserID,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// Resolve marks a suggestion resolved
func (r *SuggestionRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE suggestions SET is_resolved = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve suggestion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
