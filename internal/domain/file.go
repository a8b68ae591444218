package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// File records an uploaded attachment: either a blob-store object or a
// reference held alongside a vendor-hosted file.
type File struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FileRepository defines the interface for file record storage
type FileRepository interface {
	Create(ctx context.Context, file *File) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]File, error)
}
