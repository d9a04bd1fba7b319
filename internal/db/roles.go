package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-matcher/internal/types"
)

// RoleInformationByID loads the full role snapshot, including both ordered
// question lists with their authoritative ids. Returns nil when the role
// does not exist.
func (s *Store) RoleInformationByID(ctx context.Context, roleID int) (*types.RoleInformation, error) {
	var role types.RoleInformation
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, COALESCE(ai_description, ''),
		        COALESCE(required_experience, ''), COALESCE(department, ''), COALESCE(skills, '{}')
		 FROM roles WHERE id = $1`,
		roleID,
	).Scan(&role.ID, &role.Title, &role.Description, &role.AIDescription,
		&role.RequiredExperience, &role.Department, &role.Skills)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role %d: %w", roleID, err)
	}

	role.EvaluationQuestions, err = s.roleQuestions(ctx, "role_evaluation_questions", roleID)
	if err != nil {
		return nil, err
	}
	role.RoleQuestions, err = s.roleQuestions(ctx, "role_fit_questions", roleID)
	if err != nil {
		return nil, err
	}

	return &role, nil
}

// roleQuestions loads one ordered question list for a role. The table name
// is one of the two fixed question tables, never caller input.
func (s *Store) roleQuestions(ctx context.Context, table string, roleID int) ([]types.Question, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT id, question FROM %s WHERE role_id = $1 ORDER BY id`, table),
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s for role %d: %w", table, roleID, err)
	}
	defer rows.Close()

	var questions []types.Question
	for rows.Next() {
		var q types.Question
		if err := rows.Scan(&q.ID, &q.Text); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
