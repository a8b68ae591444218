package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/converse-ai/converse/internal/config"
	"github.com/converse-ai/converse/internal/domain"
	"github.com/converse-ai/converse/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client implements llm.ModelClient against the Gemini API.
type Client struct {
	genai *genai.Client
	cfg   config.LLMConfig
}

// NewClient creates a Gemini client. The underlying connection is shared
// across requests; call Close on shutdown.
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{genai: client, cfg: cfg}, nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.genai.Close()
}

// StreamTurn opens a streaming generation for one chat turn. History must
// end with the user message being answered.
func (c *Client) StreamTurn(ctx context.Context, history []llm.Content, opts llm.TurnOptions) (llm.TurnStream, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: empty history", domain.ErrInvalidRequest)
	}

	modelID := opts.ModelID
	if modelID == "" {
		modelID = c.cfg.DefaultModel
	}

	model := c.genai.GenerativeModel(modelID)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.SystemPrompt)},
	}
	if opts.MaxTokens > 0 {
		maxTokens := opts.MaxTokens
		model.GenerationConfig.MaxOutputTokens = &maxTokens
	}

	cs := model.StartChat()
	for _, content := range history[:len(history)-1] {
		cs.History = append(cs.History, toGenaiContent(content))
	}

	last := toGenaiContent(history[len(history)-1])
	iter := cs.SendMessageStream(ctx, last.Parts...)

	return &turnStream{iter: iter}, nil
}

// GenerateTitle derives a short chat title from the user's first message.
func (c *Client) GenerateTitle(ctx context.Context, seedText string) (string, error) {
	modelID := c.cfg.TitleModel
	if modelID == "" {
		modelID = c.cfg.DefaultModel
	}

	model := c.genai.GenerativeModel(modelID)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.TitlePrompt)},
	}
	temp := float32(0.3)
	maxTokens := int32(40)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(seedText))
	if err != nil {
		return "", fmt.Errorf("%w: title generation: %v", domain.ErrProviderFailed, err)
	}

	title := collectText(resp)
	title = strings.Trim(title, "\"'\n\r\t .")
	if title == "" {
		return "", fmt.Errorf("%w: empty title", domain.ErrProviderFailed)
	}
	return title, nil
}

// turnStream adapts the genai response iterator to llm.TurnStream.
type turnStream struct {
	iter    *genai.GenerateContentResponseIterator
	pending bool
}

func (s *turnStream) Next() (llm.Delta, error) {
	resp, err := s.iter.Next()
	if errors.Is(err, iterator.Done) {
		return llm.Delta{}, io.EOF
	}
	if err != nil {
		return llm.Delta{}, fmt.Errorf("%w: %v", domain.ErrProviderFailed, err)
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				text.WriteString(string(p))
			case genai.FunctionCall:
				// An unanswered call ends the step; the orchestrator
				// decides whether budget remains for another round.
				s.pending = true
			}
		}
	}
	return llm.Delta{Text: text.String()}, nil
}

func (s *turnStream) Pending() bool {
	return s.pending
}

func toGenaiContent(c llm.Content) *genai.Content {
	out := &genai.Content{Role: c.Role}
	for _, p := range c.Parts {
		switch p.Kind {
		case llm.PartText:
			out.Parts = append(out.Parts, genai.Text(p.Text))
		case llm.PartFile:
			out.Parts = append(out.Parts, genai.FileData{MIMEType: p.MIME, URI: p.URI})
		case llm.PartInline:
			if data, ok := decodeDataURI(p.URI); ok {
				out.Parts = append(out.Parts, genai.Blob{MIMEType: p.MIME, Data: data})
			} else {
				out.Parts = append(out.Parts, genai.FileData{MIMEType: p.MIME, URI: p.URI})
			}
		}
	}
	return out
}

// decodeDataURI extracts the payload of a base64 data: URI.
func decodeDataURI(uri string) ([]byte, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, false
	}
	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
	if err != nil {
		return nil, false
	}
	return data, true
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var out strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}
	return out.String()
}
