package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DocumentKind classifies editable block content
type DocumentKind string

const (
	DocumentText  DocumentKind = "text"
	DocumentCode  DocumentKind = "code"
	DocumentImage DocumentKind = "image"
)

// Document is one version of an editable block. Versions share an id;
// each save creates a new row with a fresh CreatedAt. The current version
// is the one with the maximum CreatedAt for a given id.
type Document struct {
	ID        uuid.UUID    `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Kind      DocumentKind `json:"kind"`
	UserID    uuid.UUID    `json:"user_id"`
}

// DocumentRepository defines the interface for versioned document storage
type DocumentRepository interface {
	SaveVersion(ctx context.Context, doc *Document) error
	// ListVersions returns all versions of a document, oldest first.
	ListVersions(ctx context.Context, id uuid.UUID) ([]Document, error)
	GetCurrent(ctx context.Context, id uuid.UUID) (*Document, error)
}
