package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// EventType tags one frame of the multiplexed turn stream.
type EventType string

const (
	// EventUserMessageID carries the persisted user-message id. It is
	// always the first event of a turn, before any token.
	EventUserMessageID EventType = "user-message-id"
	// EventToken carries one incremental model output fragment.
	EventToken EventType = "token"
	// EventError reports a mid-stream failure before the stream closes.
	EventError EventType = "error"
	// EventEnd closes a successful turn. It is emitted only after the
	// assistant message is durable.
	EventEnd EventType = "end"
)

// Event is one frame of the stream. Token deltas and sideband metadata
// share the channel; consumers discriminate on Type. Frames arrive in
// emission order.
type Event struct {
	Type    EventType `json:"type"`
	Content string    `json:"content,omitempty"`
}

// Emitter sends events to the client. Implementations must preserve
// emission order.
type Emitter interface {
	Send(Event) error
}

// HTTPWriter frames events as newline-delimited JSON over an HTTP
// response, flushing after every event.
type HTTPWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	enc     *json.Encoder
	started bool
}

// NewHTTPWriter wraps a response writer. Headers are written lazily on
// the first event so pre-stream failures can still use a plain status.
func NewHTTPWriter(w http.ResponseWriter) *HTTPWriter {
	flusher, _ := w.(http.Flusher)
	return &HTTPWriter{
		w:       w,
		flusher: flusher,
		enc:     json.NewEncoder(w),
	}
}

// Started reports whether any event has been written. Once true, errors
// can no longer be surfaced as an HTTP status.
func (h *HTTPWriter) Started() bool {
	return h.started
}

// Send writes one framed event and flushes it.
func (h *HTTPWriter) Send(e Event) error {
	if !h.started {
		h.w.Header().Set("Content-Type", "application/x-ndjson")
		h.w.Header().Set("Cache-Control", "no-cache")
		h.w.Header().Set("X-Accel-Buffering", "no")
		h.w.WriteHeader(http.StatusOK)
		h.started = true
	}

	if err := h.enc.Encode(e); err != nil {
		return fmt.Errorf("failed to write stream event: %w", err)
	}
	if h.flusher != nil {
		h.flusher.Flush()
	}
	return nil
}
