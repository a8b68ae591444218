package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/uuid"
)

// DocumentService manages document versions and their suggestions.
type DocumentService struct {
	documentRepo   domain.DocumentRepository
	suggestionRepo domain.SuggestionRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo domain.DocumentRepository, suggestionRepo domain.SuggestionRepository) *DocumentService {
	return &DocumentService{
		documentRepo:   documentRepo,
		suggestionRepo: suggestionRepo,
	}
}

// SaveVersion appends a new version of a document. Saving under an id
// another user owns is rejected. Identical consecutive contents are
// stored as distinct versions.
func (s *DocumentService) SaveVersion(ctx context.Context, userID, documentID uuid.UUID, title, content string, kind domain.DocumentKind) (*domain.Document, error) {
	current, err := s.documentRepo.GetCurrent(ctx, documentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	if current != nil && current.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	doc := &domain.Document{
		ID:        documentID,
		CreatedAt: time.Now(),
		Title:     title,
		Content:   content,
		Kind:      kind,
		UserID:    userID,
	}
	if err := s.documentRepo.SaveVersion(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: save document: %v", domain.ErrPersistenceFailed, err)
	}
	return doc, nil
}

// Versions returns all versions of a document, oldest first.
func (s *DocumentService) Versions(ctx context.Context, userID, documentID uuid.UUID) ([]domain.Document, error) {
	versions, err := s.documentRepo.ListVersions(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	if len(versions) == 0 {
		return nil, domain.ErrNotFound
	}
	if versions[0].UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return versions, nil
}

// SaveSuggestions stores a batch of suggestions against a document version.
func (s *DocumentService) SaveSuggestions(ctx context.Context, suggestions []domain.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	if err := s.suggestionRepo.SaveAll(ctx, suggestions); err != nil {
		return fmt.Errorf("%w: save suggestions: %v", domain.ErrPersistenceFailed, err)
	}
	return nil
}

// Suggestions lists suggestions for a document across all its versions.
func (s *DocumentService) Suggestions(ctx context.Context, userID, documentID uuid.UUID) ([]domain.Suggestion, error) {
	suggestions, err := s.suggestionRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	for _, sg := range suggestions {
		if sg.UserID != userID {
			return nil, domain.ErrUnauthorized
		}
	}
	return suggestions, nil
}

// ResolveSuggestion marks a suggestion as resolved.
func (s *DocumentService) ResolveSuggestion(ctx context.Context, suggestionID uuid.UUID) error {
	return s.suggestionRepo.Resolve(ctx, suggestionID)
}
