package db

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-matcher/internal/types"
)

// SkillTagsByDepartment maps employee id to skill tags, optionally filtered
// by department.
func (s *Store) SkillTagsByDepartment(ctx context.Context, department string) (map[string][]string, error) {
	query := `SELECT id, COALESCE(skills, '{}') FROM employees`
	args := []any{}
	if department != "" {
		query += ` WHERE department = $1`
		args = append(args, department)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var id string
		var skills []string
		if err := rows.Scan(&id, &skills); err != nil {
			return nil, fmt.Errorf("failed to scan skill tags: %w", err)
		}
		tags[id] = skills
	}
	return tags, rows.Err()
}

// EmployeesByIDs returns the full employee bundle per requested id. The
// four child-record queries are independent reads and run concurrently;
// ids the store does not know are simply absent from the result.
func (s *Store) EmployeesByIDs(ctx context.Context, ids []string) (map[string]types.EmployeeBundle, error) {
	if len(ids) == 0 {
		return map[string]types.EmployeeBundle{}, nil
	}

	bundles, err := s.employeeBase(ctx, ids)
	if err != nil {
		return nil, err
	}

	var (
		documents   map[string][]types.Document
		selfReviews map[string][]types.SelfAssessment
		feedback    map[string][]types.PeerFeedback
		evaluations map[string][]types.ManagerEvaluation
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		documents, err = s.employeeDocuments(gCtx, ids)
		return err
	})
	g.Go(func() (err error) {
		selfReviews, err = s.employeeSelfAssessments(gCtx, ids)
		return err
	})
	g.Go(func() (err error) {
		feedback, err = s.employeePeerFeedback(gCtx, ids)
		return err
	})
	g.Go(func() (err error) {
		evaluations, err = s.employeeManagerEvaluations(gCtx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for id, bundle := range bundles {
		bundle.Documents = documents[id]
		bundle.SelfAssessments = selfReviews[id]
		bundle.PeerFeedback = feedback[id]
		bundle.ManagerEvaluations = evaluations[id]
		bundles[id] = bundle
	}
	return bundles, nil
}

func (s *Store) employeeBase(ctx context.Context, ids []string) (map[string]types.EmployeeBundle, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, COALESCE(role, ''), COALESCE(rank, ''), COALESCE(skills, '{}')
		 FROM employees WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	bundles := make(map[string]types.EmployeeBundle)
	for rows.Next() {
		var id string
		var bundle types.EmployeeBundle
		if err := rows.Scan(&id, &bundle.Name, &bundle.Role, &bundle.Rank, &bundle.Skills); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		bundles[id] = bundle
	}
	return bundles, rows.Err()
}

func (s *Store) employeeDocuments(ctx context.Context, ids []string) (map[string][]types.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT employee_id, filename, COALESCE(extracted_text, '')
		 FROM employee_documents WHERE employee_id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee documents: %w", err)
	}
	defer rows.Close()

	documents := make(map[string][]types.Document)
	for rows.Next() {
		var id string
		var doc types.Document
		if err := rows.Scan(&id, &doc.Filename, &doc.Text); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents[id] = append(documents[id], doc)
	}
	return documents, rows.Err()
}

func (s *Store) employeeSelfAssessments(ctx context.Context, ids []string) (map[string][]types.SelfAssessment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT employee_id, COALESCE(period, ''), content
		 FROM self_assessments WHERE employee_id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list self assessments: %w", err)
	}
	defer rows.Close()

	assessments := make(map[string][]types.SelfAssessment)
	for rows.Next() {
		var id string
		var sa types.SelfAssessment
		if err := rows.Scan(&id, &sa.Period, &sa.Content); err != nil {
			return nil, fmt.Errorf("failed to scan self assessment: %w", err)
		}
		assessments[id] = append(assessments[id], sa)
	}
	return assessments, rows.Err()
}

func (s *Store) employeePeerFeedback(ctx context.Context, ids []string) (map[string][]types.PeerFeedback, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT employee_id, reviewer, rating, COALESCE(comments, '')
		 FROM peer_feedback WHERE employee_id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list peer feedback: %w", err)
	}
	defer rows.Close()

	feedback := make(map[string][]types.PeerFeedback)
	for rows.Next() {
		var id string
		var pf types.PeerFeedback
		if err := rows.Scan(&id, &pf.Reviewer, &pf.Rating, &pf.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan peer feedback: %w", err)
		}
		feedback[id] = append(feedback[id], pf)
	}
	return feedback, rows.Err()
}

func (s *Store) employeeManagerEvaluations(ctx context.Context, ids []string) (map[string][]types.ManagerEvaluation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT employee_id, COALESCE(period, ''), rating, COALESCE(summary, '')
		 FROM manager_evaluations WHERE employee_id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list manager evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := make(map[string][]types.ManagerEvaluation)
	for rows.Next() {
		var id string
		var me types.ManagerEvaluation
		if err := rows.Scan(&id, &me.Period, &me.Rating, &me.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan manager evaluation: %w", err)
		}
		evaluations[id] = append(evaluations[id], me)
	}
	return evaluations, rows.Err()
}
