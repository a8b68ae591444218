package stream

import (
	"bufio"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPWriter_Send(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewHTTPWriter(rec)

	assert.False(t, w.Started())

	assert.NoError(t, w.Send(Event{Type: EventUserMessageID, Content: "abc"}))
	assert.True(t, w.Started())
	assert.NoError(t, w.Send(Event{Type: EventToken, Content: "hello"}))
	assert.NoError(t, w.Send(Event{Type: EventEnd}))

	assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	var events []Event
	scanner := bufio.NewScanner(strings.NewReader(rec.Body.String()))
	for scanner.Scan() {
		var e Event
		assert.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		events = append(events, e)
	}

	assert.Equal(t, []Event{
		{Type: EventUserMessageID, Content: "abc"},
		{Type: EventToken, Content: "hello"},
		{Type: EventEnd},
	}, events)
}

func TestHTTPWriter_NoHeadersBeforeFirstEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewHTTPWriter(rec)

	assert.False(t, w.Started())
	assert.Empty(t, rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Body.String())
}
