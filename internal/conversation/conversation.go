// Package conversation models the append-only message history fed to the
// model on every round of a candidate search.
package conversation

// Role tags a message with its author.
type Role string

// Message roles. The transcript only ever contains these four.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model-declared request to invoke a named tool with
// JSON-encoded arguments. Only assistant messages carry tool calls.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one entry in the transcript. Tool messages answer a specific
// tool call and carry the serialized result plus the tool's name, which the
// provider layer needs to build a function response.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant builds an assistant message with optional tool calls.
func Assistant(content string, calls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// ToolResult builds a tool message answering the given call with a
// JSON-serialized result.
func ToolResult(callID, toolName, result string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, ToolName: toolName, Content: result}
}

// Transcript is the ordered, append-only sequence of messages for one
// search. Nothing is mutated or removed once appended; the full transcript
// is what every model call sees.
type Transcript struct {
	messages []Message
}

// NewTranscript seeds a transcript with the system and user messages that
// open every search.
func NewTranscript(system, user string) *Transcript {
	return &Transcript{messages: []Message{System(system), User(user)}}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// Messages returns a copy of the transcript in append order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}
