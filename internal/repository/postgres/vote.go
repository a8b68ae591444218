package postgres

import (
	"context"
	"fmt"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/uuid"
)

// VoteRepository implements domain.VoteRepository
type VoteRepository struct {
	db *DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Upsert inserts a vote or replaces the existing one for the same
// (chat, message) pair.
func (r *VoteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (chat_id, message_id, is_upvoted)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id, message_id)
		DO UPDATE SET is_upvoted = EXCLUDED.is_upvoted
	`
	_, err := r.db.Pool.Exec(ctx, query, vote.ChatID, vote.MessageID, vote.IsUpvoted)
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

// ListByChat retrieves all votes for a chat
func (r *VoteRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]domain.Vote, error) {
	query := `
		SELECT chat_id, message_id, is_upvoted
		FROM votes
		WHERE chat_id = $1
	`
	rows, err := r.db.Pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ChatID, &v.MessageID, &v.IsUpvoted); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
