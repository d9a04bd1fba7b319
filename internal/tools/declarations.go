package tools

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/talent-matcher/internal/llm"
)

// Declarations returns the schema-typed declarations for all three tools,
// in the form handed to the model on every round.
func (r *Registry) Declarations() []llm.ToolDeclaration {
	return []llm.ToolDeclaration{
		{
			Name:        ToolGetSkillTags,
			Description: "Returns a mapping from employee id to that employee's skill tags, optionally filtered by department.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"department": {
						Type:        genai.TypeString,
						Description: "Department to filter by. Pass an empty string for all departments.",
					},
				},
				Required: []string{"department"},
			},
		},
		{
			Name:        ToolGetEmployeeInformation,
			Description: "Returns detailed information per employee id: name, role, rank, skills, documents, self-assessments, peer feedback and manager evaluations.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"employeeIds": {
						Type:        genai.TypeArray,
						Description: "Employee ids to look up.",
						Items:       &genai.Schema{Type: genai.TypeString},
					},
				},
				Required: []string{"employeeIds"},
			},
		},
		{
			Name:        ToolFinalizeCandidates,
			Description: "Persists the final ranked candidate list and ends the search. Call exactly once, when the ranking is complete.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"roleId": {
						Type:        genai.TypeInteger,
						Description: "Identifier of the role being searched.",
					},
					"results": {
						Type:  genai.TypeArray,
						Items: candidateSchema(),
					},
				},
				Required: []string{"results"},
			},
		},
	}
}

// candidateSchema describes one ranked candidate in the finalize payload.
func candidateSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"employeeId":         {Type: genai.TypeString, Description: "Employee id copied from getEmployeeInformation."},
			"overallRating":      {Type: genai.TypeInteger, Description: "Overall fit score, 1-100."},
			"impactScore":        {Type: genai.TypeInteger, Description: "Impact score, 1-100."},
			"communicationScore": {Type: genai.TypeInteger, Description: "Communication score, 1-100."},
			"skillRecencyScore":  {Type: genai.TypeInteger, Description: "Skill recency score, 1-100."},
			"totalExperienceYears": {
				Type: genai.TypeInteger,
			},
			"relevantExperienceYears": {
				Type: genai.TypeInteger,
			},
			"status": {
				Type:        genai.TypeString,
				Enum:        []string{"high", "medium", "low"},
				Description: "Candidate fit level.",
			},
			"aiSummary":           {Type: genai.TypeString, Description: "Short summary of why this candidate fits."},
			"evaluationAnswers":   answerSchema("Answers to the role's evaluation questions."),
			"roleQuestionAnswers": answerSchema("Answers to the role's fit questions."),
		},
		Required: []string{"employeeId", "overallRating", "impactScore", "communicationScore", "skillRecencyScore", "status"},
	}
}

// answerSchema describes the question/answer pairs. Question ids must be
// the authoritative ids from the role information, never positional
// numbering invented by the model.
func answerSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"questionId":       {Type: genai.TypeInteger, Description: "The exact question id supplied in the role information."},
				"answer":           {Type: genai.TypeString},
				"foundInDocuments": {Type: genai.TypeBoolean, Description: "Whether the answer was found in the employee's documents."},
			},
			Required: []string{"questionId", "answer"},
		},
	}
}
