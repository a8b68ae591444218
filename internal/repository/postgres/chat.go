package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ChatRepository implements domain.ChatRepository
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create inserts a new chat
func (r *ChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	query := `
		INSERT INTO chats (id, user_id, title, visibility, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		chat.ID,
		chat.UserID,
		chat.Title,
		chat.Visibility,
		chat.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

// GetByID retrieves a chat by ID
func (r *ChatRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	query := `
		SELECT id, user_id, title, visibility, created_at
		FROM chats
		WHERE id = $1
	`
	var c domain.Chat
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Visibility,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &c, nil
}

// ListByUser retrieves all chats owned by a user, newest first
func (r *ChatRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	query := `
		SELECT id, user_id, title, visibility, created_at
		FROM chats
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var c domain.Chat
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Visibility, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// Delete removes a chat and its dependents in one transaction. Votes and
// messages are deleted explicitly so the cascade does not rely on the
// store's foreign-key behavior.
func (r *ChatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := deleteChatTx(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chat delete: %w", err)
	}
	return nil
}

// DeleteAllByUser removes every chat owned by a user, with dependents,
// in one transaction.
func (r *ChatRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT id FROM chats WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to list chats for delete: %w", err)
	}
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan chat id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to list chats for delete: %w", err)
	}

	for _, id := range ids {
		if err := deleteChatTx(ctx, tx, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bulk chat delete: %w", err)
	}
	return nil
}

func deleteChatTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM votes WHERE chat_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE chat_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM chats WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return nil
}
