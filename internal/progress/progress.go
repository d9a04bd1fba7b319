// Package progress defines the one-way, append-only event stream surfaced
// to clients while a candidate search runs. Events are emitted in strict
// chronological order; the emitter never buffers or reorders.
package progress

import "fmt"

// EventType classifies a progress event.
type EventType string

// Event types pushed during a search.
const (
	EventStatus EventType = "status"
	EventTool   EventType = "tool"
	EventResult EventType = "result"
	EventError  EventType = "error"
)

// ToolPhase is the lifecycle phase of a tool execution event.
type ToolPhase string

// Tool lifecycle phases.
const (
	PhaseStart    ToolPhase = "start"
	PhaseProgress ToolPhase = "progress"
	PhaseComplete ToolPhase = "complete"
)

// StepInfo is an optional progress descriptor attached to status events.
type StepInfo struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Step    string `json:"step"`
}

// Event is one typed entry in the progress stream.
type Event struct {
	Type     EventType `json:"type"`
	Message  string    `json:"message,omitempty"`
	Progress *StepInfo `json:"progress,omitempty"`
	Tool     string    `json:"tool,omitempty"`
	Phase    ToolPhase `json:"phase,omitempty"`
	Payload  any       `json:"payload,omitempty"`
}

// Emitter pushes events toward a client. Implementations must not block on
// slow consumers beyond what their transport imposes.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Event)

// Emit calls the underlying function.
func (f EmitterFunc) Emit(e Event) { f(e) }

// NullEmitter discards all events. Used in batch mode, where the caller
// only sees the final result.
type NullEmitter struct{}

// Emit discards the event.
func (NullEmitter) Emit(Event) {}

// Status builds a status event with an optional progress descriptor.
func Status(message string, info *StepInfo) Event {
	return Event{Type: EventStatus, Message: message, Progress: info}
}

// ToolEvent builds a tool lifecycle event.
func ToolEvent(tool string, phase ToolPhase, message string) Event {
	return Event{Type: EventTool, Tool: tool, Phase: phase, Message: message}
}

// Result builds the terminal result event.
func Result(payload any) Event {
	return Event{Type: EventResult, Payload: payload}
}

// Errorf builds an error event from a format string.
func Errorf(format string, args ...any) Event {
	return Event{Type: EventError, Message: fmt.Sprintf(format, args...)}
}
