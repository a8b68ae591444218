package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
	RoleTool      MessageRole = "tool"
)

// PartKind discriminates message content parts
type PartKind string

const (
	PartText       PartKind = "text"
	PartAttachment PartKind = "attachment"
)

// ContentPart is one element of a message's ordered content sequence:
// either plain text or a reference to an uploaded attachment.
type ContentPart struct {
	Kind PartKind `json:"kind"`
	Text string   `json:"text,omitempty"`

	// Attachment reference, set when Kind == PartAttachment.
	URL         string `json:"url,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Name        string `json:"name,omitempty"`
}

// Message represents one entry in a chat. Messages are append-only:
// never mutated after creation. Ordering within a chat is creation time,
// ties broken by id.
type Message struct {
	ID        uuid.UUID     `json:"id"`
	ChatID    uuid.UUID     `json:"chat_id"`
	Role      MessageRole   `json:"role"`
	Content   []ContentPart `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

// Text concatenates the message's text parts.
func (m Message) Text() string {
	var out string
	for _, p := range m.Content {
		if p.Kind == PartText {
			out += p.Text
		}
	}
	return out
}

// Attachment is a file reference (URI + MIME type) associated with a message.
type Attachment struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Name        string `json:"name"`
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	SaveAll(ctx context.Context, messages []Message) error
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]Message, error)
}
