package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PrajithS20/SENTINEL/internal/llm"
)

// LabAgent turns skill gaps into suggested portfolio projects.
type LabAgent struct {
	client *llm.Client
}

func NewLabAgent(client *llm.Client) *LabAgent {
	return &LabAgent{client: client}
}

// GenerateProjects returns the suggestion list as an opaque JSON array. An
// upstream failure yields an empty list rather than an error.
func (a *LabAgent) GenerateProjects(ctx context.Context, skillGaps []string) json.RawMessage {
	prompt := fmt.Sprintf(`Act as a Tech Lead and Mentor.
The user has the following technical skill gaps: %v.

Generate exactly 3 professional, portfolio-ready projects that will help the
user bridge these specific gaps.

For each project, provide:
- A unique 'id' (kebab-case string)
- 'title': Project Name
- 'description': Brief description
- 'tech' list (e.g. ["React", "Python"])
- 'icon' (Choose from: "globe", "code", "database", "smartphone", "cpu", "lightbulb")
- 'difficulty': "Beginner", "Intermediate", or "Advanced"

Return the result as ONLY a JSON object with a key "projects" containing the list.`, skillGaps)

	content, err := a.client.ChatCompletion(ctx, "You are a helpful coding mentor. Return JSON only.", prompt)
	if err != nil {
		slog.Warn("project suggestion degraded to empty list", "error", err)
		return json.RawMessage(`[]`)
	}

	var parsed struct {
		Projects json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal([]byte(llm.ScrubJSON(content)), &parsed); err != nil || parsed.Projects == nil {
		slog.Warn("project suggestion returned unusable JSON, using empty list")
		return json.RawMessage(`[]`)
	}

	return parsed.Projects
}
