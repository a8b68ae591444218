package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/converse-ai/converse/internal/api/middleware"
	"github.com/converse-ai/converse/internal/api/response"
	"github.com/converse-ai/converse/internal/domain"
	"github.com/converse-ai/converse/internal/service"
	"github.com/google/uuid"
)

// DocumentHandler handles document and suggestion endpoints
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Get returns every version of a document, oldest first
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	documentID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		response.BadRequest(w, "invalid document ID")
		return
	}

	versions, err := h.documentService.Versions(r.Context(), userID, documentID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, versions)
}

// Save appends a new version of a document
func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	documentID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		response.BadRequest(w, "invalid document ID")
		return
	}

	var input struct {
		Title   string              `json:"title" validate:"required"`
		Content string              `json:"content"`
		Kind    domain.DocumentKind `json:"kind" validate:"required,oneof=text code image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	doc, err := h.documentService.SaveVersion(r.Context(), userID, documentID, input.Title, input.Content, input.Kind)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, doc)
}

// Suggestions lists suggestions for a document
func (h *DocumentHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	documentID, err := uuid.Parse(r.URL.Query().Get("documentId"))
	if err != nil {
		response.BadRequest(w, "invalid document ID")
		return
	}

	suggestions, err := h.documentService.Suggestions(r.Context(), userID, documentID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, suggestions)
}

// SaveSuggestions stores a batch of suggestions against a document version
func (h *DocumentHandler) SaveSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		DocumentID        uuid.UUID `json:"documentId" validate:"required"`
		DocumentCreatedAt time.Time `json:"documentCreatedAt" validate:"required"`
		Suggestions       []struct {
			OriginalText  string  `json:"originalText" validate:"required"`
			SuggestedText string  `json:"suggestedText" validate:"required"`
			Description   *string `json:"description"`
		} `json:"suggestions" validate:"required,min=1,dive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	suggestions := make([]domain.Suggestion, 0, len(input.Suggestions))
	for _, s := range input.Suggestions {
		suggestions = append(suggestions, domain.Suggestion{
			ID:                uuid.New(),
			DocumentID:        input.DocumentID,
			DocumentCreatedAt: input.DocumentCreatedAt,
			OriginalText:      s.OriginalText,
			SuggestedText:     s.SuggestedText,
			Description:       s.Description,
			UserID:            userID,
			CreatedAt:         time.Now(),
		})
	}

	if err := h.documentService.SaveSuggestions(r.Context(), suggestions); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, suggestions)
}

// ResolveSuggestion marks a suggestion resolved
func (h *DocumentHandler) ResolveSuggestion(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		SuggestionID uuid.UUID `json:"suggestionId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.documentService.ResolveSuggestion(r.Context(), input.SuggestionID); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "resolved"})
}
