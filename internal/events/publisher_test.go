package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PrajithS20/SENTINEL/internal/events"
)

func TestPhaseUnlockedEvent_Marshal(t *testing.T) {
	uid := uuid.New()
	ev := events.PhaseUnlockedEvent{
		EventType:    "project.phase.unlocked",
		ProjectID:    "proj_1712345678",
		UserID:       &uid,
		CurrentPhase: 3,
		GrowthStage:  "Sprout",
		UnlockedAt:   time.Now(),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "project.phase.unlocked", decoded["event_type"])
	require.Equal(t, "proj_1712345678", decoded["project_id"])
	require.Equal(t, float64(3), decoded["current_phase"])
}

func TestPhaseUnlockedEvent_Marshal_NoOwner(t *testing.T) {
	ev := events.PhaseUnlockedEvent{
		EventType:    "project.phase.unlocked",
		ProjectID:    "proj_1712345678",
		CurrentPhase: 2,
		UnlockedAt:   time.Now(),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	_, hasUser := decoded["user_id"]
	require.False(t, hasUser)
}

func TestCommunityMessagePostedEvent_Marshal(t *testing.T) {
	ev := events.CommunityMessagePostedEvent{
		EventType: "community.message.posted",
		Channel:   "general",
		UserID:    uuid.New(),
		Type:      "text",
		PostedAt:  time.Now(),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "community.message.posted", decoded["event_type"])
	require.Equal(t, "general", decoded["channel"])
}
