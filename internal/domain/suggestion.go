package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Suggestion is a proposed edit against a specific document version.
type Suggestion struct {
	ID                uuid.UUID `json:"id"`
	DocumentID        uuid.UUID `json:"document_id"`
	DocumentCreatedAt time.Time `json:"document_created_at"`
	OriginalText      string    `json:"original_text"`
	SuggestedText     string    `json:"suggested_text"`
	Description       *string   `json:"description,omitempty"`
	IsResolved        bool      `json:"is_resolved"`
	UserID            uuid.UUID `json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// SuggestionRepository defines the interface for suggestion storage
type SuggestionRepository interface {
	SaveAll(ctx context.Context, suggestions []Suggestion) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Suggestion, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}
