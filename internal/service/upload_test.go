package service

import (
	"context"
	"strings"
	"testing"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/converse-ai/converse/internal/llm/gemini"
	"github.com/converse-ai/converse/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUploadService_UploadToModelHost(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects non-PDF", func(t *testing.T) {
		svc := NewUploadService(new(MockFileRepository), new(MockFileHost), new(MockBlobStore), 1<<20)

		_, err := svc.UploadToModelHost(ctx, userID, "cat.png", "image/png", 100, strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		svc := NewUploadService(new(MockFileRepository), new(MockFileHost), new(MockBlobStore), 1<<20)

		_, err := svc.UploadToModelHost(ctx, userID, "big.pdf", "application/pdf", 2<<20, strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("uploads and records metadata", func(t *testing.T) {
		fileRepo := new(MockFileRepository)
		host := new(MockFileHost)
		svc := NewUploadService(fileRepo, host, new(MockBlobStore), 1<<20)

		hosted := &gemini.HostedFile{
			URI:      "https://generativelanguage.googleapis.com/v1beta/files/xyz",
			MIMEType: "application/pdf",
			Name:     "files/xyz",
		}
		host.On("UploadFile", ctx, mock.Anything, "report.pdf", "application/pdf").Return(hosted, nil)
		fileRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.File) bool {
			return f.UserID == userID && f.Name == "report.pdf" && f.URL == hosted.URI
		})).Return(nil)

		got, err := svc.UploadToModelHost(ctx, userID, "report.pdf", "application/pdf", 100, strings.NewReader("%PDF"))
		assert.NoError(t, err)
		assert.Equal(t, hosted, got)
		fileRepo.AssertExpectations(t)
	})

	t.Run("host failure skips metadata row", func(t *testing.T) {
		fileRepo := new(MockFileRepository)
		host := new(MockFileHost)
		svc := NewUploadService(fileRepo, host, new(MockBlobStore), 1<<20)

		host.On("UploadFile", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrUploadFailed)

		_, err := svc.UploadToModelHost(ctx, userID, "report.pdf", "application/pdf", 100, strings.NewReader("%PDF"))
		assert.ErrorIs(t, err, domain.ErrUploadFailed)
		fileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUploadService_UploadBlob(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects unsupported type", func(t *testing.T) {
		svc := NewUploadService(new(MockFileRepository), new(MockFileHost), new(MockBlobStore), 1<<20)

		_, err := svc.UploadBlob(ctx, userID, "script.sh", "text/x-shellscript", 10, strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("stores blob and records metadata", func(t *testing.T) {
		fileRepo := new(MockFileRepository)
		blobs := new(MockBlobStore)
		svc := NewUploadService(fileRepo, new(MockFileHost), blobs, 1<<20)

		obj := &storage.Object{URL: "/uploads/abc-cat.png", Pathname: "abc-cat.png", ContentType: "image/png"}
		blobs.On("Put", ctx, "cat.png", "image/png", mock.Anything).Return(obj, nil)
		fileRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.File) bool {
			return f.URL == obj.URL && f.Type == "image/png"
		})).Return(nil)

		got, err := svc.UploadBlob(ctx, userID, "cat.png", "image/png", 100, strings.NewReader("png"))
		assert.NoError(t, err)
		assert.Equal(t, obj, got)
		fileRepo.AssertExpectations(t)
	})
}
