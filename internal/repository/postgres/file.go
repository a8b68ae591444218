package postgres

import (
	"context"
	"fmt"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/uuid"
)

// FileRepository implements domain.FileRepository
type FileRepository struct {
	db *DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create inserts a file record
func (r *FileRepository) Create(ctx context.Context, file *domain.File) error {
	query := `
		INSERT INTO files (id, name, type, url, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		file.ID,
		file.Name,
		file.Type,
		file.URL,
		file.UserID,
		file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return nil
}

// ListByUser retrieves file records for a user, newest first
func (r *FileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.File, error) {
	query := `
		SELECT id, name, type, url, user_id, created_at
		FROM files
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.URL, &f.UserID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
