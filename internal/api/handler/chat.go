package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/converse-ai/converse/internal/api/middleware"
	"github.com/converse-ai/converse/internal/api/response"
	"github.com/converse-ai/converse/internal/service"
	"github.com/converse-ai/converse/internal/stream"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ChatHandler handles chat endpoints
type ChatHandler struct {
	chatService *service.ChatService
	turnTimeout time.Duration
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, turnTimeout time.Duration) *ChatHandler {
	return &ChatHandler{chatService: chatService, turnTimeout: turnTimeout}
}

// Stream runs one chat turn. Failures before the first streamed byte come
// back as plain JSON statuses; once streaming starts, errors arrive as
// in-band events and the HTTP status stays 200.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req service.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.turnTimeout)
	defer cancel()

	tc, err := h.chatService.PrepareTurn(ctx, userID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	out := stream.NewHTTPWriter(w)
	if err := h.chatService.StreamTurn(ctx, tc, out); err != nil {
		log.Error().Err(err).Str("chat_id", tc.ChatID.String()).Msg("turn stream ended with error")
		if !out.Started() {
			response.FromError(w, err)
		}
	}
}

// Get returns a chat with its messages in creation order
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		response.BadRequest(w, "invalid chat ID")
		return
	}

	chat, messages, err := h.chatService.GetChat(r.Context(), userID, chatID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"chat":     chat,
		"messages": messages,
	})
}

// History lists the caller's chats, newest first
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chats, err := h.chatService.History(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, chats)
}

// Delete removes a chat the caller owns
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chatID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		response.NotFound(w, "chat not found")
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "deleted"})
}

// DeleteAll removes every chat the caller owns
func (h *ChatHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.chatService.DeleteAllChats(r.Context(), userID); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "deleted"})
}

// GetVotes lists votes for a chat
func (h *ChatHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	chatID, err := uuid.Parse(r.URL.Query().Get("chatId"))
	if err != nil {
		response.BadRequest(w, "invalid chat ID")
		return
	}

	votes, err := h.chatService.Votes(r.Context(), chatID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, votes)
}

// Vote records an up- or downvote on a message
func (h *ChatHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		ChatID    uuid.UUID `json:"chatId" validate:"required"`
		MessageID uuid.UUID `json:"messageId" validate:"required"`
		Type      string    `json:"type" validate:"required,oneof=up down"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.chatService.Vote(r.Context(), userID, input.ChatID, input.MessageID, input.Type == "up"); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "recorded"})
}
