package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/converse-ai/converse/internal/llm"
	"github.com/converse-ai/converse/internal/stream"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	maxTitleLen      = 80
	fallbackTitle    = "New Chat"
	geminiFileOrigin = "https://generativelanguage.googleapis.com"
)

// IncomingMessage is one entry of the client-supplied conversation history.
type IncomingMessage struct {
	Role    domain.MessageRole `json:"role" validate:"required,oneof=user assistant system tool"`
	Content string             `json:"content"`
}

// TurnRequest is the body of one chat turn.
type TurnRequest struct {
	ChatID      uuid.UUID           `json:"id" validate:"required"`
	Messages    []IncomingMessage   `json:"messages" validate:"required,min=1"`
	ModelID     string              `json:"modelId" validate:"required"`
	Attachments []domain.Attachment `json:"attachments"`
}

// TurnContext carries an assembled turn from validation to streaming.
// Its existence means the user message is already durable.
type TurnContext struct {
	ChatID        uuid.UUID
	UserMessageID uuid.UUID
	History       []llm.Content
	ModelID       string
}

// ChatService drives chat turns and chat lifecycle operations.
type ChatService struct {
	chatRepo    domain.ChatRepository
	messageRepo domain.MessageRepository
	voteRepo    domain.VoteRepository
	model       llm.ModelClient
	maxTokens   int32
	maxSteps    int
}

// NewChatService creates a new chat service
func NewChatService(
	chatRepo domain.ChatRepository,
	messageRepo domain.MessageRepository,
	voteRepo domain.VoteRepository,
	model llm.ModelClient,
	maxTokens int32,
	maxSteps int,
) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		voteRepo:    voteRepo,
		model:       model,
		maxTokens:   maxTokens,
		maxSteps:    maxSteps,
	}
}

// PrepareTurn validates a turn request, creates the chat (with a derived
// title) when it does not exist yet, and persists the user message. No
// bytes have been streamed when it returns, so callers can still map
// failures to a plain HTTP status. On success the user message is durable
// even if streaming later fails.
func (s *ChatService) PrepareTurn(ctx context.Context, userID uuid.UUID, req TurnRequest) (*TurnContext, error) {
	model, err := llm.LookupModel(req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown model %q", domain.ErrNotFound, req.ModelID)
	}

	userText, ok := mostRecentUserText(req.Messages)
	if !ok {
		return nil, fmt.Errorf("%w: no user message found", domain.ErrInvalidRequest)
	}

	if _, err := s.chatRepo.GetByID(ctx, req.ChatID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
		}
		chat := &domain.Chat{
			ID:         req.ChatID,
			UserID:     userID,
			Title:      s.deriveTitle(ctx, userText),
			Visibility: domain.VisibilityPrivate,
			CreatedAt:  time.Now(),
		}
		if err := s.chatRepo.Create(ctx, chat); err != nil {
			return nil, fmt.Errorf("%w: create chat: %v", domain.ErrPersistenceFailed, err)
		}
	}

	userMsg := domain.Message{
		ID:        uuid.New(),
		ChatID:    req.ChatID,
		Role:      domain.RoleUser,
		Content:   buildUserContent(userText, req.Attachments),
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.SaveAll(ctx, []domain.Message{userMsg}); err != nil {
		return nil, fmt.Errorf("%w: save user message: %v", domain.ErrPersistenceFailed, err)
	}

	return &TurnContext{
		ChatID:        req.ChatID,
		UserMessageID: userMsg.ID,
		History:       assembleHistory(req.Messages, req.Attachments),
		ModelID:       model.APIIdentifier,
	}, nil
}

// StreamTurn runs the streaming half of a turn: it emits the
// user-message-id metadata event, forwards model deltas in production
// order, persists the finalized assistant message, and only then emits
// the end event. A closed stream therefore implies durability.
//
// Mid-stream failures are reported in-band and the stream closes; the
// already-persisted user message stays. Context cancellation (client
// disconnect or turn deadline) abandons assistant persistence.
func (s *ChatService) StreamTurn(ctx context.Context, tc *TurnContext, out stream.Emitter) error {
	if err := out.Send(stream.Event{
		Type:    stream.EventUserMessageID,
		Content: tc.UserMessageID.String(),
	}); err != nil {
		return err
	}

	opts := llm.TurnOptions{ModelID: tc.ModelID, MaxTokens: s.maxTokens}

	// A stream that ends while a tool call is still pending gets
	// re-invoked, up to maxSteps model rounds per turn in total.
	var full strings.Builder
	for step := 1; ; step++ {
		ts, err := s.model.StreamTurn(ctx, tc.History, opts)
		if err != nil {
			return s.abort(out, fmt.Errorf("%w: %v", domain.ErrProviderFailed, err))
		}

		for {
			delta, err := ts.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return s.abort(out, err)
			}
			if delta.Text == "" {
				continue
			}
			full.WriteString(delta.Text)
			if err := out.Send(stream.Event{Type: stream.EventToken, Content: delta.Text}); err != nil {
				return err
			}
		}

		if !ts.Pending() || step >= s.maxSteps {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		// Client gone or budget expired: the partial assistant reply
		// is not persisted.
		return err
	}

	// A tool call still pending after the step budget carries no text
	// and is dropped; only resolved text content is persisted.
	text := full.String()
	if text != "" {
		assistant := domain.Message{
			ID:        uuid.New(),
			ChatID:    tc.ChatID,
			Role:      domain.RoleAssistant,
			Content:   []domain.ContentPart{{Kind: domain.PartText, Text: text}},
			CreatedAt: time.Now(),
		}
		if err := s.messageRepo.SaveAll(ctx, []domain.Message{assistant}); err != nil {
			return s.abort(out, fmt.Errorf("%w: save assistant message: %v", domain.ErrPersistenceFailed, err))
		}
	}

	return out.Send(stream.Event{Type: stream.EventEnd})
}

// abort reports a failure in-band before the stream closes.
func (s *ChatService) abort(out stream.Emitter, cause error) error {
	log.Error().Err(cause).Msg("chat turn aborted")
	if err := out.Send(stream.Event{Type: stream.EventError, Content: cause.Error()}); err != nil {
		return err
	}
	return cause
}

// GetChat returns a chat and its messages in creation order. Private
// chats are visible to their owner only.
func (s *ChatService) GetChat(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, []domain.Message, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}
	if chat.Visibility != domain.VisibilityPublic && chat.UserID != userID {
		return nil, nil, domain.ErrUnauthorized
	}
	messages, err := s.messageRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	return chat, messages, nil
}

// History lists the caller's chats, newest first.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

// DeleteChat removes a chat owned by the caller. A non-owner gets
// ErrUnauthorized rather than ErrNotFound; this reveals the chat's
// existence and is an accepted tradeoff.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if chat.UserID != userID {
		return domain.ErrUnauthorized
	}
	if err := s.chatRepo.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	return nil
}

// DeleteAllChats removes every chat owned by the caller.
func (s *ChatService) DeleteAllChats(ctx context.Context, userID uuid.UUID) error {
	if err := s.chatRepo.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	return nil
}

// Vote records an up- or downvote on a message, replacing any earlier
// vote for the same (chat, message) pair.
func (s *ChatService) Vote(ctx context.Context, userID, chatID, messageID uuid.UUID, isUpvoted bool) error {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if chat.UserID != userID {
		return domain.ErrUnauthorized
	}
	if err := s.voteRepo.Upsert(ctx, &domain.Vote{
		ChatID:    chatID,
		MessageID: messageID,
		IsUpvoted: isUpvoted,
	}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	return nil
}

// Votes lists votes for a chat.
func (s *ChatService) Votes(ctx context.Context, chatID uuid.UUID) ([]domain.Vote, error) {
	return s.voteRepo.ListByChat(ctx, chatID)
}

// deriveTitle asks the title model for a short title, truncates it and
// strips surrounding quotes. The result is never empty: on provider
// failure it falls back to the user's text, then to a constant.
func (s *ChatService) deriveTitle(ctx context.Context, userText string) string {
	title, err := s.model.GenerateTitle(ctx, userText)
	if err != nil {
		log.Warn().Err(err).Msg("title generation failed, using fallback")
		title = userText
	}
	title = strings.Trim(strings.TrimSpace(title), `"'`)
	title = truncate(title, maxTitleLen)
	if title == "" {
		return fallbackTitle
	}
	return title
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// mostRecentUserText returns the text of the last user-authored message.
func mostRecentUserText(messages []IncomingMessage) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return messages[i].Content, true
		}
	}
	return "", false
}

// buildUserContent normalizes the user's text plus attachment references
// into the persisted content-part sequence.
func buildUserContent(text string, attachments []domain.Attachment) []domain.ContentPart {
	parts := []domain.ContentPart{{Kind: domain.PartText, Text: text}}
	for _, a := range attachments {
		parts = append(parts, domain.ContentPart{
			Kind:        domain.PartAttachment,
			URL:         a.URL,
			ContentType: a.ContentType,
			Name:        a.Name,
		})
	}
	return parts
}

// assembleHistory converts the client history into provider shape. The
// turn's attachments ride on the final user message: a PDF already hosted
// by the Gemini file service is referenced by URI, anything else is
// inlined by reference rather than re-uploaded.
func assembleHistory(messages []IncomingMessage, attachments []domain.Attachment) []llm.Content {
	var history []llm.Content
	for _, m := range messages {
		role := "user"
		if m.Role == domain.RoleAssistant {
			role = "model"
		} else if m.Role != domain.RoleUser {
			// System text lives in the provider's system instruction;
			// tool entries are provider-internal.
			continue
		}
		history = append(history, llm.Content{
			Role:  role,
			Parts: []llm.Part{{Kind: llm.PartText, Text: m.Content}},
		})
	}

	if len(history) == 0 {
		return history
	}

	last := &history[len(history)-1]
	for _, a := range attachments {
		if a.ContentType == "application/pdf" && strings.HasPrefix(a.URL, geminiFileOrigin) {
			last.Parts = append(last.Parts, llm.Part{Kind: llm.PartFile, URI: a.URL, MIME: a.ContentType})
			continue
		}
		last.Parts = append(last.Parts, llm.Part{Kind: llm.PartInline, URI: a.URL, MIME: a.ContentType})
	}
	return history
}
