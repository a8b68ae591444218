package service

import (
	"context"
	"io"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/converse-ai/converse/internal/llm"
	"github.com/converse-ai/converse/internal/llm/gemini"
	"github.com/converse-ai/converse/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockChatRepository mocks the ChatRepository interface
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Chat), args.Error(1)
}

func (m *MockChatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChatRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMessageRepository mocks the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) SaveAll(ctx context.Context, messages []domain.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

// MockVoteRepository mocks the VoteRepository interface
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]domain.Vote, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]domain.Vote), args.Error(1)
}

// MockDocumentRepository mocks the DocumentRepository interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) SaveVersion(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListVersions(ctx context.Context, id uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetCurrent(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

// MockSuggestionRepository mocks the SuggestionRepository interface
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) SaveAll(ctx context.Context, suggestions []domain.Suggestion) error {
	args := m.Called(ctx, suggestions)
	return args.Error(0)
}

func (m *MockSuggestionRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Suggestion, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFileRepository mocks the FileRepository interface
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, file *domain.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.File, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.File), args.Error(1)
}

// MockModelClient mocks llm.ModelClient
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) StreamTurn(ctx context.Context, history []llm.Content, opts llm.TurnOptions) (llm.TurnStream, error) {
	args := m.Called(ctx, history, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(llm.TurnStream), args.Error(1)
}

func (m *MockModelClient) GenerateTitle(ctx context.Context, seedText string) (string, error) {
	args := m.Called(ctx, seedText)
	return args.String(0), args.Error(1)
}

// MockFileHost mocks the FileHost interface
type MockFileHost struct {
	mock.Mock
}

func (m *MockFileHost) UploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*gemini.HostedFile, error) {
	args := m.Called(ctx, r, displayName, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gemini.HostedFile), args.Error(1)
}

// MockBlobStore mocks storage.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, name, contentType string, r io.Reader) (*storage.Object, error) {
	args := m.Called(ctx, name, contentType, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}
