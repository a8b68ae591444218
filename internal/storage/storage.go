package storage

import (
	"context"
	"io"
)

// Object is a stored blob reference.
type Object struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

// BlobStore persists uploaded attachments that are not externalized to a
// vendor file service.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (*Object, error)
}
