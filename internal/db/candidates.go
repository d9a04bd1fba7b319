package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-matcher/internal/types"
)

// CreateCandidate inserts the parent candidate record and returns its
// generated id. This must succeed before any answer rows are written:
// children reference the id produced here.
func (s *Store) CreateCandidate(ctx context.Context, roleID int, candidate types.CandidateFinalizeInput) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO role_candidates
		   (role_id, employee_id, overall_rating, impact_score, communication_score,
		    skill_recency_score, total_experience_years, relevant_experience_years,
		    status, ai_summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		roleID, candidate.EmployeeID, candidate.OverallRating, candidate.ImpactScore,
		candidate.CommunicationScore, candidate.SkillRecencyScore,
		candidate.TotalExperienceYears, candidate.RelevantExperienceYears,
		string(candidate.Status), candidate.AISummary,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create candidate record: %w", err)
	}
	return id, nil
}

// CreateEvaluationAnswers bulk-inserts evaluation-question answers for a
// candidate. Question ids are the authoritative ids from the role snapshot.
func (s *Store) CreateEvaluationAnswers(ctx context.Context, candidateID int64, answers []types.QuestionAnswer) error {
	return s.insertAnswers(ctx, "candidate_evaluation_answers", candidateID, answers)
}

// CreateRoleAnswers bulk-inserts role-question answers for a candidate.
func (s *Store) CreateRoleAnswers(ctx context.Context, candidateID int64, answers []types.QuestionAnswer) error {
	return s.insertAnswers(ctx, "candidate_role_answers", candidateID, answers)
}

// insertAnswers writes one batch of answer rows. The table name is one of
// the two fixed answer tables, never caller input.
func (s *Store) insertAnswers(ctx context.Context, table string, candidateID int64, answers []types.QuestionAnswer) error {
	if len(answers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := fmt.Sprintf(
		`INSERT INTO %s (candidate_id, question_id, answer, found_in_documents)
		 VALUES ($1, $2, $3, $4)`, table)
	for _, a := range answers {
		batch.Queue(query, candidateID, a.QuestionID, a.Answer, a.FoundInDocuments)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range answers {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}
