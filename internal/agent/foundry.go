package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PrajithS20/SENTINEL/internal/llm"
)

// FoundryAgent is the in-editor mentor: it reviews the student's current
// code against the active phase objective.
type FoundryAgent struct {
	client *llm.Client
}

func NewFoundryAgent(client *llm.Client) *FoundryAgent {
	return &FoundryAgent{client: client}
}

// ChatArchitect answers a student question in the context of their project,
// phase, and editor buffer.
func (a *FoundryAgent) ChatArchitect(ctx context.Context, message, code, projectTitle, phaseTitle, phaseObjective string) string {
	system := fmt.Sprintf(`You are "The Architect", a helpful and encouraging Senior Tech Lead.
The student is working on:
Project: %s
Phase: %s
Objective: %s

Current Code:
%s

Guide the student without writing whole solutions for them. Keep answers short.`,
		projectTitle, phaseTitle, phaseObjective, code)

	response, err := a.client.ChatCompletion(ctx, system, message)
	if err != nil {
		slog.Warn("architect chat degraded to apology", "error", err)
		return "I'm having trouble thinking right now. Try again in a moment."
	}

	return response
}

// ValidationResult reports whether the submitted code satisfies the phase
// objective.
type ValidationResult struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback"`
}

func (a *FoundryAgent) ValidateCode(ctx context.Context, code, phaseObjective string) ValidationResult {
	prompt := fmt.Sprintf(`Phase objective: %s

Student code:
%s

Judge whether the code plausibly satisfies the objective.
Return a JSON object: {"approved": true/false, "feedback": "1-2 sentences"}.`, phaseObjective, code)

	content, err := a.client.ChatCompletion(ctx, "You are a strict but fair code reviewer. Return JSON only.", prompt)
	if err != nil {
		slog.Warn("code validation degraded", "error", err)
		return ValidationResult{Approved: false, Feedback: "Validation is unavailable right now. Try again shortly."}
	}

	var result ValidationResult
	if err := json.Unmarshal([]byte(llm.ScrubJSON(content)), &result); err != nil {
		return ValidationResult{Approved: false, Feedback: "Validation is unavailable right now. Try again shortly."}
	}

	return result
}
