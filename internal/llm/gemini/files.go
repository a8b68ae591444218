package gemini

import (
	"context"
	"fmt"
	"io"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/google/generative-ai-go/genai"
)

// HostedFile is the durable reference returned by the Gemini file service.
type HostedFile struct {
	URI      string `json:"fileUri"`
	MIMEType string `json:"mimeType"`
	Name     string `json:"name"`
}

// UploadFile pushes a payload to the Gemini file service and returns its
// durable URI.
func (c *Client) UploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*HostedFile, error) {
	file, err := c.genai.UploadFile(ctx, "", r, &genai.UploadFileOptions{
		DisplayName: displayName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: gemini file service: %v", domain.ErrUploadFailed, err)
	}

	return &HostedFile{
		URI:      file.URI,
		MIMEType: file.MIMEType,
		Name:     file.Name,
	}, nil
}
