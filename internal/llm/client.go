package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/jonathan/talent-matcher/internal/conversation"
)

// ToolChoice controls whether the model is allowed, required, or forbidden
// to call tools on a turn.
type ToolChoice string

// Tool choice policies.
const (
	// ToolChoiceAuto lets the model decide between text and tool calls.
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceRequired forces the model to call at least one tool.
	ToolChoiceRequired ToolChoice = "required"
	// ToolChoiceNone disables tool calling for the turn.
	ToolChoiceNone ToolChoice = "none"
)

// ToolDeclaration describes one callable tool exposed to the model.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  *genai.Schema
}

// Response is the provider-agnostic result of one model turn.
type Response struct {
	Text      string
	ToolCalls []conversation.ToolCall
}

// Client is an abstraction over LLM providers capable of multi-turn
// tool-assisted chat.
type Client interface {
	// ChatWithTools sends the full conversation plus tool declarations and
	// returns the model's next turn.
	ChatWithTools(ctx context.Context, messages []conversation.Message, tools []ToolDeclaration, choice ToolChoice, tier ModelTier) (*Response, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// ChatWithTools sends the conversation to Gemini with the declared tools.
// Errors from the provider are returned unwrapped of any local recovery;
// the caller decides how they surface.
func (c *GeminiClient) ChatWithTools(ctx context.Context, messages []conversation.Message, tools []ToolDeclaration, choice ToolChoice, tier ModelTier) (*Response, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output

	if system := systemText(messages); system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	if len(tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(tools)}}
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: toCallingMode(choice)},
		}
	}

	history, last, err := buildHistory(messages)
	if err != nil {
		return nil, err
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return extractResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// systemText concatenates all system messages into one instruction block.
func systemText(messages []conversation.Message) string {
	var parts []string
	for _, m := range messages {
		if m.Role == conversation.RoleSystem && m.Content != "" {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// buildHistory maps the transcript onto Gemini content entries. The final
// entry is returned separately because the chat session wants it as the
// outgoing message rather than as history.
func buildHistory(messages []conversation.Message) (history []*genai.Content, last *genai.Content, err error) {
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case conversation.RoleSystem:
			// Handled via the model's system instruction.
		case conversation.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		case conversation.RoleAssistant:
			parts := []genai.Part{}
			if m.Content != "" {
				parts = append(parts, genai.Text(m.Content))
			}
			for _, call := range m.ToolCalls {
				parts = append(parts, genai.FunctionCall{Name: call.Name, Args: decodeArgs(call.Arguments)})
			}
			if len(parts) == 0 {
				parts = append(parts, genai.Text(""))
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: parts})
		case conversation.RoleTool:
			contents = append(contents, &genai.Content{
				Role: "function",
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     m.ToolName,
					Response: decodeArgs(m.Content),
				}},
			})
		default:
			return nil, nil, fmt.Errorf("unsupported message role %q", m.Role)
		}
	}

	if len(contents) == 0 {
		return nil, nil, fmt.Errorf("conversation has no sendable messages")
	}
	return contents[:len(contents)-1], contents[len(contents)-1], nil
}

// decodeArgs parses a JSON object string, degrading to an empty object on
// parse failure. The tool handler's own validation is the second line of
// defense.
func decodeArgs(raw string) map[string]any {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{}
	}
	return args
}

// toDeclarations converts tool declarations into the Gemini schema form.
func toDeclarations(tools []ToolDeclaration) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return decls
}

// toCallingMode maps a ToolChoice onto Gemini's function calling modes.
func toCallingMode(choice ToolChoice) genai.FunctionCallingMode {
	switch choice {
	case ToolChoiceRequired:
		return genai.FunctionCallingAny
	case ToolChoiceNone:
		return genai.FunctionCallingNone
	default:
		return genai.FunctionCallingAuto
	}
}

// extractResponse pulls text and tool calls out of a Gemini response.
func extractResponse(resp *genai.GenerateContentResponse) (*Response, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	out := &Response{}

	if candidate.Content != nil {
		var parts []string
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				parts = append(parts, string(text))
			}
		}
		out.Text = strings.Join(parts, "")
	}

	for _, fc := range candidate.FunctionCalls() {
		args, err := json.Marshal(fc.Args)
		if err != nil {
			args = []byte("{}")
		}
		out.ToolCalls = append(out.ToolCalls, conversation.ToolCall{
			ID:        "call_" + uuid.NewString(),
			Name:      fc.Name,
			Arguments: string(args),
		})
	}

	return out, nil
}
