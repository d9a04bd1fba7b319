// Package types provides type definitions for structured data used throughout the talent-matcher system.
package types

// Question is a single evaluation or role-fit question attached to a role.
// The ID is assigned by the data store when the question is created; it is
// the only identifier the model is allowed to reference when answering.
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// RoleInformation is an immutable snapshot of a job opening used to seed a
// candidate search. It is read once per search and never mutated by the
// matching subsystem.
type RoleInformation struct {
	ID                  int        `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	AIDescription       string     `json:"ai_description,omitempty"`
	RequiredExperience  string     `json:"required_experience,omitempty"`
	Department          string     `json:"department,omitempty"`
	Skills              []string   `json:"skills,omitempty"`
	EvaluationQuestions []Question `json:"evaluation_questions"`
	RoleQuestions       []Question `json:"role_questions"`
}

// EvaluationQuestionIDs returns the set of authoritative evaluation question ids.
func (r *RoleInformation) EvaluationQuestionIDs() map[int]bool {
	return questionIDSet(r.EvaluationQuestions)
}

// RoleQuestionIDs returns the set of authoritative role-fit question ids.
func (r *RoleInformation) RoleQuestionIDs() map[int]bool {
	return questionIDSet(r.RoleQuestions)
}

func questionIDSet(questions []Question) map[int]bool {
	ids := make(map[int]bool, len(questions))
	for _, q := range questions {
		ids[q.ID] = true
	}
	return ids
}
