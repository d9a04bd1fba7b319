package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

// FinalizeArgs are the declared arguments of the finalizeCandidates tool.
type FinalizeArgs struct {
	Results []types.CandidateFinalizeInput `json:"results"`
	RoleID  int                            `json:"roleId"`
}

// FinalizeCandidates persists the model's ranked candidates. Candidates are
// independent units of work: the parent record is created first (children
// reference its generated id), then evaluation and role answers in bulk.
// One candidate's failure marks it failed and moves on; it never aborts or
// rolls back the others. Failures before the per-candidate loop report
// Success=false with zero counts.
func (r *Registry) FinalizeCandidates(ctx context.Context, rawArgs string) types.FinalizeResult {
	if err := schemas.ValidateFinalizePayload([]byte(rawArgs)); err != nil {
		log.Printf("[tools] finalizeCandidates payload rejected: %v", err)
		return types.FinalizeResult{Success: false, Error: fmt.Sprintf("invalid payload: %v", err)}
	}

	var args FinalizeArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return types.FinalizeResult{Success: false, Error: fmt.Sprintf("failed to parse payload: %v", err)}
	}

	if args.RoleID != 0 && args.RoleID != r.role.ID {
		return types.FinalizeResult{Success: false, Error: fmt.Sprintf("role id %d does not match the searched role %d", args.RoleID, r.role.ID)}
	}

	// Empty input is a success no-op; the write path is never touched.
	if len(args.Results) == 0 {
		return types.FinalizeResult{Success: true}
	}

	evalIDs := r.role.EvaluationQuestionIDs()
	roleIDs := r.role.RoleQuestionIDs()

	succeeded, failed := 0, 0
	var failures []string
	for i, candidate := range args.Results {
		if err := r.persistCandidate(ctx, candidate, evalIDs, roleIDs); err != nil {
			failed++
			note := fmt.Sprintf("candidate %d (employee %s): %v", i+1, candidate.EmployeeID, err)
			failures = append(failures, note)
			log.Printf("[tools] finalizeCandidates: %s", note)
			continue
		}
		succeeded++
	}

	r.writeMatchLog(ctx, rawArgs, failures)

	return types.FinalizeResult{Success: true, DataCount: succeeded, FailedCount: failed}
}

// persistCandidate writes one candidate and its answer rows. The parent
// insert must succeed before any child insert runs: child rows reference
// the parent's generated identifier.
func (r *Registry) persistCandidate(ctx context.Context, candidate types.CandidateFinalizeInput, evalIDs, roleIDs map[int]bool) error {
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("invalid candidate payload: %w", err)
	}

	candidateID, err := r.store.CreateCandidate(ctx, r.role.ID, candidate)
	if err != nil {
		return fmt.Errorf("failed to create candidate record: %w", err)
	}

	if answers := filterAuthoritative(candidate.EvaluationAnswers, evalIDs); len(answers) > 0 {
		if err := r.store.CreateEvaluationAnswers(ctx, candidateID, answers); err != nil {
			return fmt.Errorf("failed to create evaluation answers: %w", err)
		}
	}

	if answers := filterAuthoritative(candidate.RoleQuestionAnswers, roleIDs); len(answers) > 0 {
		if err := r.store.CreateRoleAnswers(ctx, candidateID, answers); err != nil {
			return fmt.Errorf("failed to create role question answers: %w", err)
		}
	}

	return nil
}

// filterAuthoritative keeps only answers whose question id was issued by
// the data store for this role. The model is instructed to echo ids
// verbatim; anything else is dropped rather than persisted as a dangling
// reference.
func filterAuthoritative(answers []types.QuestionAnswer, valid map[int]bool) []types.QuestionAnswer {
	kept := make([]types.QuestionAnswer, 0, len(answers))
	for _, a := range answers {
		if !valid[a.QuestionID] {
			log.Printf("[tools] dropping answer for unknown question id %d", a.QuestionID)
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// writeMatchLog durably records the raw finalize payload, with any failure
// notes appended, under a timestamp-derived name. Best effort: a log-write
// failure never affects the persistence outcome.
func (r *Registry) writeMatchLog(ctx context.Context, rawResults string, failures []string) {
	name := fmt.Sprintf("finalize-%s-%s", time.Now().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
	content := rawResults
	if len(failures) > 0 {
		content += "\n\n-- failures --\n" + strings.Join(failures, "\n")
	}
	if err := r.store.SaveMatchLog(ctx, name, content); err != nil {
		log.Printf("[tools] failed to write match log %s: %v", name, err)
	}
}
