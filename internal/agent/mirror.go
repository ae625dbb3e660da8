// Package agent hosts the external language-model collaborators. Every
// agent degrades to a documented fallback instead of letting an upstream
// failure reach persisted state.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PrajithS20/SENTINEL/internal/llm"
	"github.com/PrajithS20/SENTINEL/internal/model"
)

// MirrorAgent analyzes resumes and breaks projects into phase curricula.
type MirrorAgent struct {
	client *llm.Client
}

func NewMirrorAgent(client *llm.Client) *MirrorAgent {
	return &MirrorAgent{client: client}
}

// AnalyzeResume returns the analysis document as an opaque JSON payload.
// The document is stored verbatim; only current_skills and skill_gaps are
// ever read back out.
func (a *MirrorAgent) AnalyzeResume(ctx context.Context, resumeText, targetRole string) (json.RawMessage, error) {
	prompt := fmt.Sprintf(`Analyze this resume for a %s role.
Return a JSON object with:
1. 'personal_details': { "name": "...", "email": "...", "phone": "..." }
2. 'education': [ { "degree": "...", "university": "...", "year": "..." } ]
3. 'experience': [ { "role": "...", "company": "...", "duration": "...", "description": "..." } ]
4. 'current_skills' (list)
5. 'skill_gaps' (list)

Resume: %s

Return ONLY valid JSON.`, targetRole, resumeText)

	content, err := a.client.ChatCompletion(ctx, "You are an expert career coach and resume analyzer. Return JSON only.", prompt)
	if err != nil {
		slog.Warn("resume analysis degraded to fallback", "error", err)
		return fallbackAnalysis, nil
	}

	scrubbed := llm.ScrubJSON(content)
	if !json.Valid([]byte(scrubbed)) {
		slog.Warn("resume analysis returned invalid JSON, using fallback")
		return fallbackAnalysis, nil
	}

	return json.RawMessage(scrubbed), nil
}

// GeneratePhases asks for a six-phase curriculum; on any upstream failure it
// returns the fixed template so a project can always be started.
func (a *MirrorAgent) GeneratePhases(ctx context.Context, title, tech string) model.PhaseList {
	prompt := fmt.Sprintf(`Project: "%s" using %s.
Break this project down into exactly 6 distinct, progressive phases.
For each phase, provide:
1. "id": phase index (1-6)
2. "title": A clear, professional phase name (e.g. "Backend Setup", "Core Features").
3. "description": A brief 1-sentence overview.
4. "tasks": A list of 3-5 specific, actionable bullet points (strings) to complete this phase.

Return a JSON list of objects.`, title, tech)

	content, err := a.client.ChatCompletion(ctx, "You are a technical project manager. Return JSON only.", prompt)
	if err != nil {
		slog.Warn("phase generation degraded to fallback template", "project", title, "error", err)
		return FallbackPhases()
	}

	var phases model.PhaseList
	if err := json.Unmarshal([]byte(llm.ScrubJSON(content)), &phases); err != nil || len(phases) == 0 {
		slog.Warn("phase generation returned unusable JSON, using fallback template", "project", title)
		return FallbackPhases()
	}

	return phases
}

var fallbackAnalysis = json.RawMessage(`{
	"personal_details": {"name": "Cadet X", "email": "cadet@sentinel.ai"},
	"education": [],
	"experience": [],
	"current_skills": ["Python", "JavaScript", "Problem Solving"],
	"skill_gaps": ["Cloud Architecture", "System Design"]
}`)

// FallbackPhases is the fixed six-phase template used when the generator is
// unavailable.
func FallbackPhases() model.PhaseList {
	return model.PhaseList{
		{ID: 1, Title: "Setup & Init", Description: "Initialize project structure", Tasks: []string{"Install dependencies", "Setup Git", "Hello World"}},
		{ID: 2, Title: "Core Logic", Description: "Implement main features", Tasks: []string{"Build API", "Create Components", "Connect DB"}},
		{ID: 3, Title: "UI/UX Polish", Description: "Style the application", Tasks: []string{"Add animations", "Responsive design", "Theme setup"}},
		{ID: 4, Title: "Integration", Description: "Connect frontend and backend", Tasks: []string{"Fetch API", "State Management", "Error Handling"}},
		{ID: 5, Title: "Testing", Description: "Ensure quality", Tasks: []string{"Unit Tests", "Integration Tests", "Bug Fixes"}},
		{ID: 6, Title: "Deployment", Description: "Ship to production", Tasks: []string{"Build optimization", "Deploy", "Documentation"}},
	}
}
