package llm

import "context"

// PartKind discriminates turn content parts.
type PartKind string

const (
	// PartText is plain text.
	PartText PartKind = "text"
	// PartFile references a file hosted by the provider's file service.
	PartFile PartKind = "file"
	// PartInline references an attachment by URI without re-uploading it.
	PartInline PartKind = "inline"
)

// Part is one element of a turn message.
type Part struct {
	Kind PartKind
	Text string
	URI  string
	MIME string
}

// Content is one message of the conversation passed to the provider.
type Content struct {
	Role  string // "user" or "model"
	Parts []Part
}

// TurnOptions bound one model invocation. The cap on tool-call rounds
// per turn lives in the orchestrator, which re-invokes on a pending
// stream.
type TurnOptions struct {
	ModelID   string
	MaxTokens int32
}

// Delta is one incremental output fragment.
type Delta struct {
	Text string
}

// TurnStream yields deltas in production order. Next returns io.EOF when
// generation ends.
type TurnStream interface {
	Next() (Delta, error)
	// Pending reports, after Next returned io.EOF, whether generation
	// stopped on an unresolved tool call and another invocation is
	// needed to continue the turn.
	Pending() bool
}

// ModelClient is the capability the orchestrator needs from a model
// provider: stream one turn, and derive a chat title from seed text.
type ModelClient interface {
	StreamTurn(ctx context.Context, history []Content, opts TurnOptions) (TurnStream, error)
	GenerateTitle(ctx context.Context, seedText string) (string, error)
}
