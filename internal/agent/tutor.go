package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PrajithS20/SENTINEL/internal/llm"
)

const tutorFallback = "I'm having trouble reaching my reasoning engine right now. Your message has been saved, please try again in a moment."

// TutorAgent answers free-form career mentoring questions inside chat
// sessions, grounded in the user's latest profile.
type TutorAgent struct {
	client *llm.Client
}

func NewTutorAgent(client *llm.Client) *TutorAgent {
	return &TutorAgent{client: client}
}

// Reply never fails; on upstream trouble it returns a fixed apology so the
// conversation record stays intact.
func (a *TutorAgent) Reply(ctx context.Context, role string, skills []string, question string) string {
	system := "You are SENTINEL, a concise and encouraging career mentor. Give practical, specific advice. Keep answers under 200 words."

	var prompt strings.Builder
	if role != "" {
		fmt.Fprintf(&prompt, "The user is working toward a %s role. ", role)
	}
	if len(skills) > 0 {
		fmt.Fprintf(&prompt, "Their current skills: %s. ", strings.Join(skills, ", "))
	}
	prompt.WriteString("Question: ")
	prompt.WriteString(question)

	reply, err := a.client.ChatCompletion(ctx, system, prompt.String())
	if err != nil {
		slog.Warn("tutor reply degraded to fallback", "error", err)
		return tutorFallback
	}

	return strings.TrimSpace(reply)
}
