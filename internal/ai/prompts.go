package ai

import (
	"encoding/json"
	"fmt"

	"github.com/designflow/backend/internal/model"
	"google.golang.org/genai"
)

// FeedbackAnalysisSchema constrains the feedback analysis output to
// model.FeedbackAnalysis.
func FeedbackAnalysisSchema() *genai.Schema {
	stringList := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: desc,
		}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A concise summary of the client feedback.",
			},
			"sentiment": {
				Type: genai.TypeString,
				Enum: []string{
					string(model.SentimentPositive),
					string(model.SentimentNeutral),
					string(model.SentimentNegative),
					string(model.SentimentMixed),
				},
				Description: "Overall emotional tone of the feedback.",
			},
			"key_requests":        stringList("Concrete, actionable change requests made by the client."),
			"ambiguities":         stringList("Vague terms (\"more premium\", \"more modern\") or unclear instructions that need confirmation."),
			"suggested_questions": stringList("Professional questions the designer should ask the client to resolve the ambiguities."),
			"next_steps_suggestion": {
				Type:        genai.TypeString,
				Description: "Strategic recommendation for the next step of the current design phase.",
			},
		},
		Required: []string{"summary", "sentiment", "key_requests", "ambiguities", "suggested_questions", "next_steps_suggestion"},
	}
}

// FeedbackPrompt asks for an analysis of raw client feedback in the context of
// the project's current design phase.
func FeedbackPrompt(feedback string, phase model.DesignPhase) string {
	return fmt.Sprintf(`You are a senior industrial design project manager.
Your goal is to help designers digest and understand client feedback during the %q phase.

Analyze the following client feedback text or meeting notes.
Identify the concrete change requests, as well as comments that are vague, subjective or easy to misread.
Suggest specific questions the designer can ask the client for clarification.

Feedback:
%q
`, phase.Label(), feedback)
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SummaryPrompt asks for a professional summary of a project file.
func SummaryPrompt(fileName, content string, maxChars int) string {
	return fmt.Sprintf(`Read the following industrial design project file (file name: %s) and write a professional summary.
The summary should include key findings, data points and design requirements.

File content:
%q
`, fileName, TruncateRunes(content, maxChars))
}

// AssistantContext is the compact project view handed to the assistant.
type AssistantContext struct {
	Name     string               `json:"name"`
	Client   string               `json:"client"`
	Status   model.ProjectStatus  `json:"status"`
	Progress int                  `json:"progress"`
	Phase    string               `json:"phase"`
	DueDate  string               `json:"due_date"`
	Team     []string             `json:"team"`
	Phases   []model.ProjectPhase `json:"phases"`
}

// BuildAssistantContext drops heavy fields (notes, files, logs) from projects.
func BuildAssistantContext(projects []model.Project) []AssistantContext {
	out := make([]AssistantContext, 0, len(projects))
	for _, p := range projects {
		team := make([]string, 0, len(p.Team))
		for _, m := range p.Team {
			team = append(team, m.Name)
		}
		phases := p.Phases
		if phases == nil {
			phases = []model.ProjectPhase{}
		}
		out = append(out, AssistantContext{
			Name:     p.Name,
			Client:   p.Client,
			Status:   p.Status,
			Progress: p.Progress,
			Phase:    p.CurrentPhase.Label(),
			DueDate:  p.DueDate,
			Team:     team,
			Phases:   phases,
		})
	}
	return out
}

// AssistantPrompt asks the studio assistant a question over live project data.
func AssistantPrompt(query string, projects []model.Project) (string, error) {
	data, err := json.Marshal(BuildAssistantContext(projects))
	if err != nil {
		return "", fmt.Errorf("ai: encode project context: %w", err)
	}
	return fmt.Sprintf(`You are "DesignFlow Assistant", a smart assistant working for an industrial design studio.

Here is the live data of all current studio projects (JSON):
%s

User question: %q

Answer the question based on the project data.
Rules:
1. For progress questions, answer from the 'progress' field.
2. For deadline questions, use 'due_date' and mention the remaining time.
3. For a specific project, give its status, phase and team.
4. Keep answers short, professional and helpful.
`, data, query), nil
}
