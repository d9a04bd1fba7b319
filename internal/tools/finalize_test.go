package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateJSON(employeeID string) string {
	return fmt.Sprintf(`{
		"employeeId": %q,
		"overallRating": 85,
		"impactScore": 80,
		"communicationScore": 75,
		"skillRecencyScore": 90,
		"totalExperienceYears": 8,
		"relevantExperienceYears": 5,
		"status": "high",
		"aiSummary": "Strong match.",
		"evaluationAnswers": [
			{"questionId": 45, "answer": "Scaled the ingest pipeline.", "foundInDocuments": true},
			{"questionId": 67, "answer": "Runs incident reviews.", "foundInDocuments": false}
		],
		"roleQuestionAnswers": [
			{"questionId": 123, "answer": "Team mission.", "foundInDocuments": false},
			{"questionId": 156, "answer": "Go and Postgres.", "foundInDocuments": true}
		]
	}`, employeeID)
}

func TestFinalizeCandidates_PersistsCandidatesAndAnswers(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, testRole())

	payload := fmt.Sprintf(`{"roleId": 7, "results": [%s]}`, candidateJSON("emp-1"))
	result := registry.FinalizeCandidates(context.Background(), payload)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.DataCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Empty(t, result.Error)

	require.Len(t, store.createdInputs, 1)
	assert.Equal(t, []int{7}, store.createdRoleIDs)
	assert.Equal(t, "emp-1", store.createdInputs[0].EmployeeID)

	// Answer rows land under the generated candidate id with ids echoed
	// verbatim from the role snapshot.
	evalAnswers := store.evalAnswers[1]
	require.Len(t, evalAnswers, 2)
	assert.Equal(t, 45, evalAnswers[0].QuestionID)
	assert.Equal(t, 67, evalAnswers[1].QuestionID)
	assert.True(t, evalAnswers[0].FoundInDocuments)

	roleAnswers := store.roleAnswers[1]
	require.Len(t, roleAnswers, 2)
	assert.Equal(t, 123, roleAnswers[0].QuestionID)
	assert.Equal(t, 156, roleAnswers[1].QuestionID)
}

func TestFinalizeCandidates_EmptyResultsIsSuccessNoOp(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, testRole())

	result := registry.FinalizeCandidates(context.Background(), `{"results": []}`)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.DataCount)
	assert.Equal(t, 0, result.FailedCount)

	// The write path is never touched: no candidates, no answers, no log.
	assert.Empty(t, store.createdRoleIDs)
	assert.Empty(t, store.evalAnswers)
	assert.Empty(t, store.roleAnswers)
	assert.Empty(t, store.matchLogs)
}

func TestFinalizeCandidates_InvalidPayloadRejected(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, testRole())

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `this is not json`},
		{"missing results", `{"roleId": 7}`},
		{"score out of range", `{"results": [{"employeeId": "e", "overallRating": 150, "impactScore": 1, "communicationScore": 1, "skillRecencyScore": 1, "status": "high"}]}`},
		{"bad status", `{"results": [{"employeeId": "e", "overallRating": 50, "impactScore": 1, "communicationScore": 1, "skillRecencyScore": 1, "status": "maybe"}]}`},
		{"missing employee id", `{"results": [{"overallRating": 50, "impactScore": 1, "communicationScore": 1, "skillRecencyScore": 1, "status": "high"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := registry.FinalizeCandidates(context.Background(), tt.payload)
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Error)
			assert.Equal(t, 0, result.DataCount)
			assert.Equal(t, 0, result.FailedCount)
		})
	}

	assert.Empty(t, store.createdRoleIDs, "rejected payloads must not reach the store")
}

func TestFinalizeCandidates_RoleIDMismatch(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, testRole())

	payload := fmt.Sprintf(`{"roleId": 99, "results": [%s]}`, candidateJSON("emp-1"))
	result := registry.FinalizeCandidates(context.Background(), payload)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "99")
	assert.Empty(t, store.createdRoleIDs)
}

func TestFinalizeCandidates_OmittedRoleIDAccepted(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, testRole())

	payload := fmt.Sprintf(`{"results": [%s]}`, candidateJSON("emp-1"))
	result := registry.FinalizeCandidates(context.Background(), payload)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.DataCount)
}

func TestFinalizeCandidates_FailureIsolation(t *testing.T) {
	store := newFakeStore()
	store.failCandidateIdx[1] = errors.New("insert failed")
	registry := NewRegistry(store, testRole())

	payload := fmt.Sprintf(`{"results": [%s, %s, %s]}`,
		candidateJSON("emp-1"), candidateJSON("emp-2"), candidateJSON("emp-3"))
	result := registry.FinalizeCandidates(context.Background(), payload)

	// The middle candidate fails; its neighbors still persist.
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.DataCount)
	assert.Equal(t, 1, result.FailedCount)

	require.Len(t, store.createdInputs, 2)
	assert.Equal(t, "emp-1", store.createdInputs[0].EmployeeID)
	assert.Equal(t, "emp-3", store.createdInputs[1].EmployeeID)

	// No answer rows for the failed candidate.
	assert.Len(t, store.evalAnswers, 2)
	assert.Len(t, store.roleAnswers, 2)
}

func TestFinalizeCandidates_DropsUnknownQuestionIDs(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, testRole())

	payload := `{"results": [{
		"employeeId": "emp-1",
		"overallRating": 70, "impactScore": 70, "communicationScore": 70, "skillRecencyScore": 70,
		"status": "medium",
		"evaluationAnswers": [
			{"questionId": 45, "answer": "kept"},
			{"questionId": 999, "answer": "fabricated id"}
		],
		"roleQuestionAnswers": [
			{"questionId": 1, "answer": "fabricated id"}
		]
	}]}`
	result := registry.FinalizeCandidates(context.Background(), payload)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.DataCount)
	assert.Equal(t, 0, result.FailedCount)

	evalAnswers := store.evalAnswers[1]
	require.Len(t, evalAnswers, 1)
	assert.Equal(t, 45, evalAnswers[0].QuestionID)

	// Every role answer carried an unknown id, so none persist.
	assert.Empty(t, store.roleAnswers[1])
}

func TestFinalizeCandidates_WritesMatchLog(t *testing.T) {
	store := newFakeStore()
	store.failCandidateIdx[0] = errors.New("insert failed")
	registry := NewRegistry(store, testRole())

	payload := fmt.Sprintf(`{"results": [%s, %s]}`, candidateJSON("emp-1"), candidateJSON("emp-2"))
	registry.FinalizeCandidates(context.Background(), payload)

	require.Len(t, store.matchLogs, 1)
	for name, content := range store.matchLogs {
		assert.True(t, strings.HasPrefix(name, "finalize-"))
		assert.Contains(t, content, `"emp-1"`)
		assert.Contains(t, content, "-- failures --")
		assert.Contains(t, content, "emp-1")
	}
}

func TestFinalizeCandidates_MatchLogFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.matchLogErr = errors.New("log table missing")
	registry := NewRegistry(store, testRole())

	payload := fmt.Sprintf(`{"results": [%s]}`, candidateJSON("emp-1"))
	result := registry.FinalizeCandidates(context.Background(), payload)

	// Audit logging is best effort; the persistence outcome is unaffected.
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.DataCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Empty(t, result.Error)
}
