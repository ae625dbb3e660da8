package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PrajithS20/SENTINEL/internal/llm"
)

// MarketAgent combines a web search with LLM synthesis to produce job
// matches and live market feeds.
type MarketAgent struct {
	client *llm.Client
	search *SearchClient
}

func NewMarketAgent(client *llm.Client, search *SearchClient) *MarketAgent {
	return &MarketAgent{client: client, search: search}
}

// JobMatches returns structured job listings as an opaque JSON array. Any
// upstream failure degrades to an empty list; the caller decides whether to
// cache it.
func (a *MarketAgent) JobMatches(ctx context.Context, role string, skills []string) json.RawMessage {
	if role == "" {
		return json.RawMessage(`[]`)
	}

	query := fmt.Sprintf("latest %s jobs %v (site:linkedin.com/jobs OR site:indeed.com) apply now", role, skills)
	results, err := a.search.Search(ctx, query, 15)
	if err != nil {
		slog.Warn("job search degraded to empty list", "role", role, "error", err)
		return json.RawMessage(`[]`)
	}

	searchContext, _ := json.Marshal(results)
	prompt := fmt.Sprintf(`Act as a job search engine.
I have performed a search for "%s" jobs. Here are the raw search results:
%s

Extract and format 6 REALISTIC job listings from these results.
For each job, provide: "title", "company", "location", "salary", "type",
"match_score" (75-98 integer based on skill match with %v), "skills"
(list of 3-4 matching skills), "description" (1 sentence), "posted", "link".

Return ONLY a JSON array of objects.`, role, searchContext, skills)

	content, err := a.client.ChatCompletion(ctx, "You are a job search assistant. Return JSON only.", prompt)
	if err != nil {
		slog.Warn("job match synthesis degraded to empty list", "role", role, "error", err)
		return json.RawMessage(`[]`)
	}

	scrubbed := llm.ScrubJSON(content)
	if !json.Valid([]byte(scrubbed)) {
		return json.RawMessage(`[]`)
	}

	return json.RawMessage(scrubbed)
}

// LiveFeed lists trending job titles and project ideas for the dashboard.
type LiveFeed struct {
	HotJobs     []string `json:"hot_jobs"`
	HotProjects []string `json:"hot_projects"`
}

func (a *MarketAgent) LiveFeeds(ctx context.Context, role string, skills []string) LiveFeed {
	if role == "" {
		return fallbackFeed("")
	}

	query := fmt.Sprintf("trending job titles and technical projects for %s", role)
	results, err := a.search.Search(ctx, query, 5)
	if err != nil {
		slog.Warn("live feed search degraded to fallback", "role", role, "error", err)
		return fallbackFeed(role)
	}

	searchContext, _ := json.Marshal(results)
	prompt := fmt.Sprintf(`Based on the following search results about market trends:
%s

Generate a "Live Feed" for a candidate aiming for "%s" with skills: %v.
Return a JSON object with two arrays:
1. "hot_jobs": 4 trending job titles related to %s.
2. "hot_projects": 4 trending technical project ideas related to %s.
Return ONLY valid JSON.`, searchContext, role, skills, role, role)

	content, err := a.client.ChatCompletion(ctx, "You are a market analyst. Return JSON only.", prompt)
	if err != nil {
		slog.Warn("live feed synthesis degraded to fallback", "role", role, "error", err)
		return fallbackFeed(role)
	}

	var feed LiveFeed
	if err := json.Unmarshal([]byte(llm.ScrubJSON(content)), &feed); err != nil || len(feed.HotJobs) == 0 {
		return fallbackFeed(role)
	}

	return feed
}

func fallbackFeed(role string) LiveFeed {
	if role == "" {
		return LiveFeed{
			HotJobs:     []string{"DevOps Engineer", "ML Engineer", "Backend Developer", "Frontend React Dev"},
			HotProjects: []string{"CI/CD Pipeline", "AI Chatbot", "E-commerce API", "Portfolio Site"},
		}
	}
	return LiveFeed{
		HotJobs:     []string{role + " @ TechCorp", "Remote Developer Opportunity", "Startup CTO Role", "Freelance Contract"},
		HotProjects: []string{"AI-Powered Dashboard", "E-commerce Microservices", "Real-time Chat App", "Crypto Portfolio Tracker"},
	}
}
