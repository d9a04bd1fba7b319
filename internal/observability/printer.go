// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-matcher/internal/agent"
	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRoleInformation outputs a human-readable summary of the role being searched.
func (p *Printer) PrintRoleInformation(role *types.RoleInformation) {
	if role == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s (id %d)\n", role.Title, role.ID))
	if role.Department != "" {
		sb.WriteString(fmt.Sprintf("Department: %s\n", role.Department))
	}
	if role.RequiredExperience != "" {
		sb.WriteString(fmt.Sprintf("Experience: %s\n", role.RequiredExperience))
	}

	if len(role.Skills) > 0 {
		skills := strings.Join(role.Skills, ", ")
		if len(skills) > 40 {
			skills = skills[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills:     %s\n", skills))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Evaluation questions: %d\n", len(role.EvaluationQuestions)))
	count := min(len(role.EvaluationQuestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		q := role.EvaluationQuestions[i]
		text := q.Text
		if len(text) > 45 {
			text = text[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", q.ID, text))
	}
	if len(role.EvaluationQuestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(role.EvaluationQuestions)-maxItemsToShow))
	}
	sb.WriteString(fmt.Sprintf("Role questions: %d", len(role.RoleQuestions)))

	p.printBox("ROLE INFORMATION", sb.String())
}

// PrintMatchResult outputs the terminal outcome of a search.
func (p *Printer) PrintMatchResult(result *agent.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rounds used: %d/%d\n", result.Rounds, agent.MaxRounds))

	if result.Finalized && result.Finalize != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Candidates saved:  %d\n", result.Finalize.DataCount))
		sb.WriteString(fmt.Sprintf("Candidates failed: %d\n", result.Finalize.FailedCount))
		if result.Finalize.Error != "" {
			sb.WriteString(fmt.Sprintf("Error: %s\n", result.Finalize.Error))
		}
		p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	sb.WriteString("\nNo finalization; degraded result:\n")
	text := result.Text
	if text == "" {
		text = "(empty)"
	}
	if len(text) > 150 {
		text = text[:147] + "..."
	}
	sb.WriteString(fmt.Sprintf("  %s", text))
	p.printBox("MATCH RESULT (degraded)", sb.String())
}
