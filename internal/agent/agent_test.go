package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PrajithS20/SENTINEL/internal/agent"
	"github.com/PrajithS20/SENTINEL/internal/llm"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func offlineAgentClient() *llm.Client {
	return llm.NewClient("http://127.0.0.1:1", "", "test-model")
}

func TestSkillsFrom(t *testing.T) {
	current, gaps := agent.SkillsFrom(json.RawMessage(`{
		"personal_details": {"name": "Ada"},
		"current_skills": ["Go", "SQL"],
		"skill_gaps": ["Kubernetes"]
	}`))
	require.Equal(t, []string{"Go", "SQL"}, current)
	require.Equal(t, []string{"Kubernetes"}, gaps)
}

func TestSkillsFrom_Garbage(t *testing.T) {
	current, gaps := agent.SkillsFrom(json.RawMessage(`not json at all`))
	require.Empty(t, current)
	require.Empty(t, gaps)
}

func TestMirrorAnalyzeResume_FallsBackWhenOffline(t *testing.T) {
	mirror := agent.NewMirrorAgent(offlineAgentClient())

	analysis, err := mirror.AnalyzeResume(context.Background(), "ten years of cobol", "Backend Engineer")
	require.NoError(t, err)
	require.True(t, json.Valid(analysis))

	_, gaps := agent.SkillsFrom(analysis)
	require.NotEmpty(t, gaps, "fallback analysis still seeds skill gaps")
}

func TestMirrorAnalyzeResume_ScrubsFencedJSON(t *testing.T) {
	srv := completionServer(t, "```json\n{\"current_skills\":[\"Go\"],\"skill_gaps\":[]}\n```")
	mirror := agent.NewMirrorAgent(llm.NewClient(srv.URL, "", "m"))

	analysis, err := mirror.AnalyzeResume(context.Background(), "resume", "role")
	require.NoError(t, err)

	current, _ := agent.SkillsFrom(analysis)
	require.Equal(t, []string{"Go"}, current)
}

func TestMirrorGeneratePhases_FallsBackToTemplate(t *testing.T) {
	mirror := agent.NewMirrorAgent(offlineAgentClient())

	phases := mirror.GeneratePhases(context.Background(), "Chat App", "Go")
	require.Len(t, phases, 6)
	require.Equal(t, 1, phases[0].ID)
	require.Equal(t, "Deployment", phases[5].Title)
}

func TestMirrorGeneratePhases_RejectsEmptyList(t *testing.T) {
	srv := completionServer(t, "[]")
	mirror := agent.NewMirrorAgent(llm.NewClient(srv.URL, "", "m"))

	phases := mirror.GeneratePhases(context.Background(), "Chat App", "Go")
	require.Len(t, phases, 6, "an empty curriculum falls back to the template")
}

func TestFoundryValidateCode_FailsClosed(t *testing.T) {
	foundry := agent.NewFoundryAgent(offlineAgentClient())

	result := foundry.ValidateCode(context.Background(), "print('x')", "Build the API")
	require.False(t, result.Approved)
	require.NotEmpty(t, result.Feedback)
}

func TestTutorReply_FallsBackWhenOffline(t *testing.T) {
	tutor := agent.NewTutorAgent(offlineAgentClient())

	reply := tutor.Reply(context.Background(), "Backend Engineer", []string{"Go"}, "Am I ready?")
	require.NotEmpty(t, reply)
}

func TestMarketJobMatches_FallsBackToEmptyList(t *testing.T) {
	market := agent.NewMarketAgent(offlineAgentClient(), agent.NewSearchClient("http://127.0.0.1:1", ""))

	matches := market.JobMatches(context.Background(), "Backend Engineer", []string{"Go"})
	require.True(t, json.Valid(matches))

	var parsed []any
	require.NoError(t, json.Unmarshal(matches, &parsed))
	require.Empty(t, parsed)
}
