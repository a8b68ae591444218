package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/uuid"
)

// MessageRepository implements domain.MessageRepository
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// SaveAll inserts one or more messages in a single transaction.
func (r *MessageRepository) SaveAll(ctx context.Context, messages []domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO messages (id, chat_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, m := range messages {
		content, err := json.Marshal(m.Content)
		if err != nil {
			return fmt.Errorf("failed to marshal message content: %w", err)
		}
		if _, err := tx.Exec(ctx, query, m.ID, m.ChatID, m.Role, content, m.CreatedAt); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit messages: %w", err)
	}
	return nil
}

// ListByChat retrieves all messages of a chat in creation order,
// ties broken by id.
func (r *MessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]domain.Message, error) {
	query := `
		SELECT id, chat_id, role, content, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var roleStr string
		var content []byte

		if err := rows.Scan(&m.ID, &m.ChatID, &roleStr, &content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if err := json.Unmarshal(content, &m.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message content: %w", err)
		}
		m.Role = domain.MessageRole(roleStr)
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
