package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-matcher/internal/agent"
	"github.com/jonathan/talent-matcher/internal/types"
)

func TestPrintRoleInformation(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintRoleInformation(&types.RoleInformation{
		ID:         7,
		Title:      "Staff Engineer",
		Department: "Engineering",
		Skills:     []string{"go", "postgres"},
		EvaluationQuestions: []types.Question{
			{ID: 45, Text: "Describe a system you scaled."},
		},
		RoleQuestions: []types.Question{{ID: 123, Text: "Why this team?"}},
	})

	out := buf.String()
	assert.Contains(t, out, "ROLE INFORMATION")
	assert.Contains(t, out, "Staff Engineer")
	assert.Contains(t, out, "[45]")
	assert.Contains(t, out, "Role questions: 1")

	// Every line fits the box width.
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth, "line overflows box: %q", line)
	}
}

func TestPrintRoleInformation_NilRole(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRoleInformation(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatchResult_Finalized(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchResult(&agent.Result{
		Finalized: true,
		Finalize:  &types.FinalizeResult{Success: true, DataCount: 3, FailedCount: 1},
		Rounds:    4,
	})

	out := buf.String()
	assert.Contains(t, out, "MATCH RESULT")
	assert.Contains(t, out, "Rounds used: 4/5")
	assert.Contains(t, out, "Candidates saved:  3")
	assert.Contains(t, out, "Candidates failed: 1")
}

func TestPrintMatchResult_Degraded(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchResult(&agent.Result{
		Text:   "No suitable candidates found.",
		Rounds: 5,
	})

	out := buf.String()
	assert.Contains(t, out, "degraded")
	assert.Contains(t, out, "No suitable candidates found.")
}
