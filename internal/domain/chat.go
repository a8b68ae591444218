package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Visibility controls who can read a chat
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Chat represents a persistent conversation thread owned by one user
type Chat struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ChatRepository defines the interface for chat storage.
//
// Delete and DeleteAllByUser remove dependent votes and messages in the
// same transaction, so the cascade holds even on stores without native
// foreign-key cascades.
type ChatRepository interface {
	Create(ctx context.Context, chat *Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Chat, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Chat, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}
