// Package tools implements the fixed set of callable tools exposed to the
// model during a candidate search: getSkillTags, getEmployeeInformation and
// finalizeCandidates. Dispatch is a closed switch over these names; an
// unknown name degrades to an empty result so the conversation keeps moving.
package tools

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonathan/talent-matcher/internal/conversation"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Tool names as declared to the model.
const (
	ToolGetSkillTags           = "getSkillTags"
	ToolGetEmployeeInformation = "getEmployeeInformation"
	ToolFinalizeCandidates     = "finalizeCandidates"
)

// Store is the slice of the data layer the tools need. Tools see only their
// declared arguments, never the conversation.
type Store interface {
	// SkillTagsByDepartment maps employee id to skill tags, optionally
	// filtered by department (empty string means all departments).
	SkillTagsByDepartment(ctx context.Context, department string) (map[string][]string, error)
	// EmployeesByIDs returns the full employee bundle per requested id.
	EmployeesByIDs(ctx context.Context, ids []string) (map[string]types.EmployeeBundle, error)
	// CreateCandidate inserts the parent candidate record and returns its
	// generated id. Child answer rows reference this id.
	CreateCandidate(ctx context.Context, roleID int, candidate types.CandidateFinalizeInput) (int64, error)
	// CreateEvaluationAnswers bulk-inserts evaluation-question answers for a candidate.
	CreateEvaluationAnswers(ctx context.Context, candidateID int64, answers []types.QuestionAnswer) error
	// CreateRoleAnswers bulk-inserts role-question answers for a candidate.
	CreateRoleAnswers(ctx context.Context, candidateID int64, answers []types.QuestionAnswer) error
	// SaveMatchLog appends an audit record under the given name.
	SaveMatchLog(ctx context.Context, name, content string) error
}

// Registry binds the tool set to a data store and the role being searched.
// One registry is created per search; the role snapshot supplies the
// authoritative question ids finalize answers are checked against.
type Registry struct {
	store Store
	role  *types.RoleInformation
}

// NewRegistry creates a tool registry scoped to one search.
func NewRegistry(store Store, role *types.RoleInformation) *Registry {
	return &Registry{store: store, role: role}
}

// Execute runs a single tool call and returns its JSON-serializable result.
// It never returns an error: read-tool failures surface as flagged result
// payloads and unknown tool names degrade to an empty object.
func (r *Registry) Execute(ctx context.Context, call conversation.ToolCall) any {
	switch call.Name {
	case ToolGetSkillTags:
		return r.getSkillTags(ctx, call.Arguments)
	case ToolGetEmployeeInformation:
		return r.getEmployeeInformation(ctx, call.Arguments)
	case ToolFinalizeCandidates:
		return r.FinalizeCandidates(ctx, call.Arguments)
	default:
		log.Printf("[tools] unknown tool %q requested, returning empty result", call.Name)
		return map[string]any{}
	}
}

// decodeArgs unmarshals raw tool arguments into v. A malformed payload
// degrades to the zero value instead of failing the round; the handler's
// own validation is the second line of defense.
func decodeArgs[T any](raw string, v *T) {
	if raw == "" {
		return
	}
	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		log.Printf("[tools] malformed tool arguments, proceeding with empty object: %v", err)
		return
	}
	*v = decoded
}
