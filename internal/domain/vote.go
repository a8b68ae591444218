package domain

import (
	"context"

	"github.com/google/uuid"
)

// Vote records whether a user up- or downvoted an assistant message.
// At most one vote exists per (chat, message); a later vote replaces
// the earlier one.
type Vote struct {
	ChatID    uuid.UUID `json:"chat_id"`
	MessageID uuid.UUID `json:"message_id"`
	IsUpvoted bool      `json:"is_upvoted"`
}

// VoteRepository defines the interface for vote storage
type VoteRepository interface {
	Upsert(ctx context.Context, vote *Vote) error
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]Vote, error)
}
