package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/converse-ai/converse/internal/llm/gemini"
	"github.com/converse-ai/converse/internal/storage"
	"github.com/google/uuid"
)

// FileHost uploads a file to the model provider's file service so it can
// later be referenced by URI in a turn.
type FileHost interface {
	UploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*gemini.HostedFile, error)
}

var blobContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// UploadService ingests attachments. PDFs destined for the model go to
// the provider's file service; everything else lands in the blob store.
// Every accepted file also gets a metadata row.
type UploadService struct {
	fileRepo domain.FileRepository
	host     FileHost
	blobs    storage.BlobStore
	maxSize  int64
}

// NewUploadService creates a new upload service
func NewUploadService(fileRepo domain.FileRepository, host FileHost, blobs storage.BlobStore, maxSize int64) *UploadService {
	return &UploadService{
		fileRepo: fileRepo,
		host:     host,
		blobs:    blobs,
		maxSize:  maxSize,
	}
}

// UploadToModelHost pushes a PDF to the provider file service and records
// it. Only PDFs are accepted on this path.
func (s *UploadService) UploadToModelHost(ctx context.Context, userID uuid.UUID, name, contentType string, size int64, r io.Reader) (*gemini.HostedFile, error) {
	if contentType != "application/pdf" {
		return nil, fmt.Errorf("%w: only PDF files are supported, got %s", domain.ErrInvalidRequest, contentType)
	}
	if err := s.checkSize(size); err != nil {
		return nil, err
	}

	hosted, err := s.host.UploadFile(ctx, io.LimitReader(r, s.maxSize), name, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.record(ctx, userID, name, contentType, hosted.URI); err != nil {
		return nil, err
	}
	return hosted, nil
}

// UploadBlob stores a file in the blob store and records it.
func (s *UploadService) UploadBlob(ctx context.Context, userID uuid.UUID, name, contentType string, size int64, r io.Reader) (*storage.Object, error) {
	if !blobContentTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported file type %s", domain.ErrInvalidRequest, contentType)
	}
	if err := s.checkSize(size); err != nil {
		return nil, err
	}

	obj, err := s.blobs.Put(ctx, name, contentType, io.LimitReader(r, s.maxSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if err := s.record(ctx, userID, name, contentType, obj.URL); err != nil {
		return nil, err
	}
	return obj, nil
}

// Files lists the caller's uploads, newest first.
func (s *UploadService) Files(ctx context.Context, userID uuid.UUID) ([]domain.File, error) {
	return s.fileRepo.ListByUser(ctx, userID)
}

func (s *UploadService) checkSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("%w: empty file", domain.ErrInvalidRequest)
	}
	if size > s.maxSize {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidRequest, s.maxSize)
	}
	return nil
}

func (s *UploadService) record(ctx context.Context, userID uuid.UUID, name, contentType, url string) error {
	file := &domain.File{
		ID:        uuid.New(),
		Name:      name,
		Type:      contentType,
		URL:       url,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return fmt.Errorf("%w: record file: %v", domain.ErrPersistenceFailed, err)
	}
	return nil
}
