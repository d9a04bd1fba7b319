package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/talent-matcher/internal/progress"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event. Each event is flushed immediately so the
// client observes progress in emission order.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress sends a progress event under its type name.
func (s *SSEWriter) WriteProgress(e progress.Event) error {
	return s.WriteEvent(string(e.Type), e)
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}
