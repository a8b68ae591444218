package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/converse-ai/converse/internal/api/middleware"
	"github.com/converse-ai/converse/internal/api/response"
	"github.com/converse-ai/converse/internal/service"
)

// FileHandler handles file ingestion endpoints
type FileHandler struct {
	uploadService *service.UploadService
	maxSize       int64
}

// NewFileHandler creates a new file handler
func NewFileHandler(uploadService *service.UploadService, maxSize int64) *FileHandler {
	return &FileHandler{uploadService: uploadService, maxSize: maxSize}
}

type uploadFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadToModelHost accepts a PDF and pushes it to the model provider's
// file service. A single-file request answers with the hosted file or a
// plain error status; a multi-file request processes each file
// independently and reports per-file results, so one bad file does not
// fail the rest.
func (h *FileHandler) UploadToModelHost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	files, ok := h.formFiles(w, r)
	if !ok {
		return
	}

	single := func(ctx context.Context, header *multipart.FileHeader, f multipart.File) (any, error) {
		return h.uploadService.UploadToModelHost(ctx, userID, header.Filename, contentTypeOf(header), header.Size, f)
	}

	if len(files) == 1 {
		h.respondSingle(w, r, files[0], single)
		return
	}
	h.respondBatch(w, r, files, single)
}

// Upload stores files in the blob store. Same response shape rules as
// UploadToModelHost.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	files, ok := h.formFiles(w, r)
	if !ok {
		return
	}

	single := func(ctx context.Context, header *multipart.FileHeader, f multipart.File) (any, error) {
		return h.uploadService.UploadBlob(ctx, userID, header.Filename, contentTypeOf(header), header.Size, f)
	}

	if len(files) == 1 {
		h.respondSingle(w, r, files[0], single)
		return
	}
	h.respondBatch(w, r, files, single)
}

type uploadFn func(ctx context.Context, header *multipart.FileHeader, f multipart.File) (any, error)

func (h *FileHandler) respondSingle(w http.ResponseWriter, r *http.Request, header *multipart.FileHeader, upload uploadFn) {
	f, err := header.Open()
	if err != nil {
		response.BadRequest(w, "unreadable file")
		return
	}
	defer f.Close()

	obj, err := upload(r.Context(), header, f)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, obj)
}

func (h *FileHandler) respondBatch(w http.ResponseWriter, r *http.Request, files []*multipart.FileHeader, upload uploadFn) {
	var (
		uploaded []any
		failed   []uploadFailure
	)
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			failed = append(failed, uploadFailure{Name: header.Filename, Error: "unreadable file"})
			continue
		}
		obj, err := upload(r.Context(), header, f)
		f.Close()
		if err != nil {
			failed = append(failed, uploadFailure{Name: header.Filename, Error: err.Error()})
			continue
		}
		uploaded = append(uploaded, obj)
	}

	response.OK(w, map[string]any{
		"uploaded": uploaded,
		"failed":   failed,
	})
}

// List returns the caller's uploads, newest first.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	files, err := h.uploadService.Files(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, files)
}

func (h *FileHandler) formFiles(w http.ResponseWriter, r *http.Request) ([]*multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		response.BadRequest(w, "invalid multipart body")
		return nil, false
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		response.BadRequest(w, "no file uploaded")
		return nil, false
	}
	return files, true
}

func contentTypeOf(header *multipart.FileHeader) string {
	ct := header.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}
