// Package agent implements the bounded multi-round conversation loop that
// drives a candidate search. The loop calls the model with the full
// transcript and tool declarations, executes any tool calls in emission
// order, and terminates on finalization, a tool-free response, or the
// round limit.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/talent-matcher/internal/conversation"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/progress"
	"github.com/jonathan/talent-matcher/internal/prompts"
	"github.com/jonathan/talent-matcher/internal/tools"
	"github.com/jonathan/talent-matcher/internal/types"
)

// MaxRounds bounds the number of model calls per search. The round budget
// is the only circuit breaker against a non-converging model.
const MaxRounds = 5

// Model is the slice of the LLM client the loop needs.
type Model interface {
	ChatWithTools(ctx context.Context, messages []conversation.Message, tools []llm.ToolDeclaration, choice llm.ToolChoice, tier llm.ModelTier) (*llm.Response, error)
}

// Toolset executes tool calls. Finalization is addressed separately because
// it is the single terminal, persistence-writing step.
type Toolset interface {
	Declarations() []llm.ToolDeclaration
	Execute(ctx context.Context, call conversation.ToolCall) any
	FinalizeCandidates(ctx context.Context, rawArgs string) types.FinalizeResult
}

// Result is the terminal outcome of one search. Exactly one of Finalize
// being set or Text carrying the model's last words applies: a search
// either finalized, or degraded to whatever the model last said.
type Result struct {
	Finalized bool                  `json:"finalized"`
	Finalize  *types.FinalizeResult `json:"finalize,omitempty"`
	Text      string                `json:"text,omitempty"`
	Rounds    int                   `json:"rounds"`
}

// Loop drives the conversation for one search invocation.
type Loop struct {
	model   Model
	tools   Toolset
	tier    llm.ModelTier
	emitter progress.Emitter
}

// NewLoop creates a loop. A nil emitter selects batch mode (no intermediate
// observability).
func NewLoop(model Model, toolset Toolset, tier llm.ModelTier, emitter progress.Emitter) *Loop {
	if emitter == nil {
		emitter = progress.NullEmitter{}
	}
	return &Loop{model: model, tools: toolset, tier: tier, emitter: emitter}
}

// Run executes at most MaxRounds rounds for the given role. Model errors
// are not recovered here; they propagate to the caller, which owns turning
// them into an error event or HTTP failure.
func (l *Loop) Run(ctx context.Context, role *types.RoleInformation) (*Result, error) {
	transcript, err := seedTranscript(role)
	if err != nil {
		return nil, err
	}

	declarations := l.tools.Declarations()
	lastText := ""

	for round := 1; round <= MaxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l.emitter.Emit(progress.Status(
			fmt.Sprintf("Evaluating candidates (round %d of %d)", round, MaxRounds),
			&progress.StepInfo{Current: round, Total: MaxRounds, Step: "match"},
		))

		// Tool use is mandatory on every turn; the model must act, not chat.
		resp, err := l.model.ChatWithTools(ctx, transcript.Messages(), declarations, llm.ToolChoiceRequired, l.tier)
		if err != nil {
			return nil, fmt.Errorf("model call failed on round %d: %w", round, err)
		}
		if resp.Text != "" {
			lastText = resp.Text
		}

		// A response with no tool calls ends the search immediately with the
		// text as a degenerate result.
		if len(resp.ToolCalls) == 0 {
			result := &Result{Text: resp.Text, Rounds: round}
			l.finish(result)
			return result, nil
		}

		transcript.Append(conversation.Assistant(resp.Text, resp.ToolCalls...))

		for _, call := range resp.ToolCalls {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			// Finalization is a hard exit: it runs at most once per search and
			// nothing after it, not even tool calls from the same round.
			if call.Name == tools.ToolFinalizeCandidates {
				l.emitter.Emit(progress.ToolEvent(call.Name, progress.PhaseStart, "Saving ranked candidates"))
				finalize := l.tools.FinalizeCandidates(ctx, call.Arguments)
				l.emitter.Emit(progress.ToolEvent(call.Name, progress.PhaseComplete,
					fmt.Sprintf("Saved %d candidates (%d failed)", finalize.DataCount, finalize.FailedCount)))

				result := &Result{Finalized: true, Finalize: &finalize, Text: lastText, Rounds: round}
				l.finish(result)
				return result, nil
			}

			l.emitter.Emit(progress.ToolEvent(call.Name, progress.PhaseStart, ""))
			payload := l.tools.Execute(ctx, call)
			transcript.Append(conversation.ToolResult(call.ID, call.Name, encodeResult(payload)))
			l.emitter.Emit(progress.ToolEvent(call.Name, progress.PhaseComplete, ""))
		}
	}

	// Round budget exhausted without finalization: degraded result.
	result := &Result{Text: lastText, Rounds: MaxRounds}
	l.finish(result)
	return result, nil
}

// finish emits the terminal result and completion status events.
func (l *Loop) finish(result *Result) {
	l.emitter.Emit(progress.Result(result))
	l.emitter.Emit(progress.Status("complete", nil))
}

// seedTranscript builds the system and user messages that open every search.
func seedTranscript(role *types.RoleInformation) (*conversation.Transcript, error) {
	roleJSON, err := json.MarshalIndent(role, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode role information: %w", err)
	}

	system := prompts.MustGet("matching.json", "system")
	user := prompts.Format(prompts.MustGet("matching.json", "user"), map[string]string{
		"RoleInformation": string(roleJSON),
	})
	return conversation.NewTranscript(system, user), nil
}

// encodeResult serializes a tool result for the transcript. Serialization
// failure degrades to an empty object rather than aborting the round.
func encodeResult(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}
