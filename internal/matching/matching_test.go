package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/conversation"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/progress"
	"github.com/jonathan/talent-matcher/internal/tools"
	"github.com/jonathan/talent-matcher/internal/types"
)

type stubRoles struct {
	role *types.RoleInformation
	err  error
}

func (s *stubRoles) RoleInformationByID(_ context.Context, _ int) (*types.RoleInformation, error) {
	return s.role, s.err
}

// finalizingModel immediately finalizes with an empty result set.
type finalizingModel struct{}

func (finalizingModel) ChatWithTools(_ context.Context, _ []conversation.Message, _ []llm.ToolDeclaration, _ llm.ToolChoice, _ llm.ModelTier) (*llm.Response, error) {
	return &llm.Response{ToolCalls: []conversation.ToolCall{{
		ID:        "call_1",
		Name:      tools.ToolFinalizeCandidates,
		Arguments: `{"results": []}`,
	}}}, nil
}

type noopStore struct{}

func (noopStore) SkillTagsByDepartment(context.Context, string) (map[string][]string, error) {
	return map[string][]string{}, nil
}
func (noopStore) EmployeesByIDs(context.Context, []string) (map[string]types.EmployeeBundle, error) {
	return map[string]types.EmployeeBundle{}, nil
}
func (noopStore) CreateCandidate(context.Context, int, types.CandidateFinalizeInput) (int64, error) {
	return 1, nil
}
func (noopStore) CreateEvaluationAnswers(context.Context, int64, []types.QuestionAnswer) error {
	return nil
}
func (noopStore) CreateRoleAnswers(context.Context, int64, []types.QuestionAnswer) error { return nil }
func (noopStore) SaveMatchLog(context.Context, string, string) error                     { return nil }

func TestRun_RequiresDependencies(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{Roles: &stubRoles{}, Store: noopStore{}})
	assert.Error(t, err)
}

func TestRun_RoleLookupFailure(t *testing.T) {
	opts := Options{
		RoleID: 12,
		Roles:  &stubRoles{err: errors.New("connection refused")},
		Store:  noopStore{},
		Model:  finalizingModel{},
	}

	_, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12")
}

func TestRun_RoleNotFound(t *testing.T) {
	opts := Options{
		RoleID: 12,
		Roles:  &stubRoles{role: nil},
		Store:  noopStore{},
		Model:  finalizingModel{},
	}

	_, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRun_FinalizesAndStreamsProgress(t *testing.T) {
	var events []progress.Event
	opts := Options{
		RoleID: 7,
		Roles:  &stubRoles{role: &types.RoleInformation{ID: 7, Title: "Staff Engineer"}},
		Store:  noopStore{},
		Model:  finalizingModel{},
		OnProgress: func(e progress.Event) {
			events = append(events, e)
		},
	}

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.Finalized)
	require.NotNil(t, result.Finalize)
	assert.True(t, result.Finalize.Success)
	assert.Equal(t, 1, result.Rounds)

	require.NotEmpty(t, events)
	assert.Equal(t, progress.EventStatus, events[0].Type)
	last := events[len(events)-1]
	assert.Equal(t, progress.EventStatus, last.Type)
	assert.Equal(t, "complete", last.Message)
}

func TestRun_BatchModeWithoutProgress(t *testing.T) {
	opts := Options{
		RoleID: 7,
		Roles:  &stubRoles{role: &types.RoleInformation{ID: 7, Title: "Staff Engineer"}},
		Store:  noopStore{},
		Model:  finalizingModel{},
	}

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Finalized)
}
