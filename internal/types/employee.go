package types

// Document is an uploaded employee document with its extracted text.
type Document struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// SelfAssessment is a self-reported assessment for a review period.
type SelfAssessment struct {
	Period  string `json:"period,omitempty"`
	Content string `json:"content"`
}

// PeerFeedback is a single piece of peer feedback with the reviewer's identity.
type PeerFeedback struct {
	Reviewer string `json:"reviewer"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments,omitempty"`
}

// ManagerEvaluation is a manager-authored evaluation for a review period.
type ManagerEvaluation struct {
	Period  string `json:"period,omitempty"`
	Rating  int    `json:"rating"`
	Summary string `json:"summary,omitempty"`
}

// EmployeeBundle is the full structured view of one employee handed to the
// model by the getEmployeeInformation tool.
type EmployeeBundle struct {
	Name               string              `json:"name"`
	Role               string              `json:"role,omitempty"`
	Rank               string              `json:"rank,omitempty"`
	Skills             []string            `json:"skills,omitempty"`
	Documents          []Document          `json:"documents,omitempty"`
	SelfAssessments    []SelfAssessment    `json:"self_assessments,omitempty"`
	PeerFeedback       []PeerFeedback      `json:"peer_feedback,omitempty"`
	ManagerEvaluations []ManagerEvaluation `json:"manager_evaluations,omitempty"`
}
