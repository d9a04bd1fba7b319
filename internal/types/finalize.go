package types

import (
	"github.com/go-playground/validator/v10"
)

// CandidateStatus is the model-assigned fit level for a ranked candidate.
type CandidateStatus string

// Candidate status levels accepted by finalizeCandidates.
const (
	StatusHigh   CandidateStatus = "high"
	StatusMedium CandidateStatus = "medium"
	StatusLow    CandidateStatus = "low"
)

// QuestionAnswer pairs an authoritative question id with the model's answer.
// QuestionID must be copied verbatim from the role's question lists; ids the
// data store never issued are dropped before persistence.
type QuestionAnswer struct {
	QuestionID       int    `json:"questionId" validate:"required"`
	Answer           string `json:"answer"`
	FoundInDocuments bool   `json:"foundInDocuments"`
}

// CandidateFinalizeInput is one ranked candidate as declared by the model in
// a finalizeCandidates call. Scores are bounded 1-100.
type CandidateFinalizeInput struct {
	EmployeeID              string           `json:"employeeId" validate:"required"`
	OverallRating           int              `json:"overallRating" validate:"min=1,max=100"`
	ImpactScore             int              `json:"impactScore" validate:"min=1,max=100"`
	CommunicationScore      int              `json:"communicationScore" validate:"min=1,max=100"`
	SkillRecencyScore       int              `json:"skillRecencyScore" validate:"min=1,max=100"`
	TotalExperienceYears    int              `json:"totalExperienceYears" validate:"min=0"`
	RelevantExperienceYears int              `json:"relevantExperienceYears" validate:"min=0"`
	Status                  CandidateStatus  `json:"status" validate:"required,oneof=high medium low"`
	AISummary               string           `json:"aiSummary"`
	EvaluationAnswers       []QuestionAnswer `json:"evaluationAnswers,omitempty" validate:"dive"`
	RoleQuestionAnswers     []QuestionAnswer `json:"roleQuestionAnswers,omitempty" validate:"dive"`
}

// Validate validates the CandidateFinalizeInput using the validator.
func (c *CandidateFinalizeInput) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// FinalizeResult is the outcome of one finalizeCandidates invocation.
// Success refers to the batch setup; per-candidate failures are counted in
// FailedCount and never flip Success to false.
type FinalizeResult struct {
	Success     bool   `json:"success"`
	DataCount   int    `json:"dataCount"`
	FailedCount int    `json:"failedCount"`
	Error       string `json:"error,omitempty"`
}
