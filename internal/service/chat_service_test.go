package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PrajithS20/SENTINEL/internal/agent"
	"github.com/PrajithS20/SENTINEL/internal/model"
)

type stubChatRepo struct {
	sessions map[string]*model.ChatSession
	messages map[string][]model.ChatMessage
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{
		sessions: map[string]*model.ChatSession{},
		messages: map[string][]model.ChatMessage{},
	}
}

func (s *stubChatRepo) CreateSession(_ context.Context, session *model.ChatSession) error {
	if _, exists := s.sessions[session.ID]; exists {
		return nil
	}
	copied := *session
	copied.CreatedAt = time.Now()
	s.sessions[session.ID] = &copied
	return nil
}

func (s *stubChatRepo) FindSession(_ context.Context, id string) (*model.ChatSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *stubChatRepo) ListSessions(_ context.Context, userID uuid.UUID) ([]model.ChatSession, error) {
	var out []model.ChatSession
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, *sess)
		}
	}
	return out, nil
}

func (s *stubChatRepo) RenameSession(_ context.Context, id string, title string) error {
	if sess, ok := s.sessions[id]; ok {
		sess.Title = title
	}
	return nil
}

func (s *stubChatRepo) DeleteSession(_ context.Context, id string) error {
	delete(s.sessions, id)
	delete(s.messages, id)
	return nil
}

func (s *stubChatRepo) AppendMessage(_ context.Context, msg *model.ChatMessage) error {
	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], *msg)
	return nil
}

func (s *stubChatRepo) History(_ context.Context, sessionID string) ([]model.ChatMessage, error) {
	return s.messages[sessionID], nil
}

func (s *stubChatRepo) CountMessages(_ context.Context, sessionID string) (int, error) {
	return len(s.messages[sessionID]), nil
}

func newTestChatService(chats *stubChatRepo) ChatService {
	return NewChatService(chats, newStubProfileRepo(), agent.NewTutorAgent(offlineClient()))
}

func TestCreateSession_Idempotent(t *testing.T) {
	chats := newStubChatRepo()
	svc := newTestChatService(chats)

	userID := uuid.New()
	first, err := svc.CreateSession(context.Background(), userID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, defaultSessionTitle, first.Title)

	chats.sessions["sess-1"].Title = "Renamed"

	again, err := svc.CreateSession(context.Background(), userID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", again.Title, "replayed create keeps the existing session")
}

func TestSendMessage_FirstMessageNamesSession(t *testing.T) {
	chats := newStubChatRepo()
	svc := newTestChatService(chats)

	userID := uuid.New()
	_, err := svc.CreateSession(context.Background(), userID, "sess-1")
	require.NoError(t, err)

	reply, err := svc.SendMessage(context.Background(), userID, "sess-1", "How do I become a backend engineer?\nAsking for a friend.")
	require.NoError(t, err)
	require.NotEmpty(t, reply)

	// First line only, and both sides of the exchange persisted.
	require.Equal(t, "How do I become a backend engi...", chats.sessions["sess-1"].Title)
	require.Len(t, chats.messages["sess-1"], 2)
	require.Equal(t, "user", chats.messages["sess-1"][0].Role)
	require.Equal(t, "assistant", chats.messages["sess-1"][1].Role)
}

func TestSendMessage_SecondMessageKeepsTitle(t *testing.T) {
	chats := newStubChatRepo()
	svc := newTestChatService(chats)

	userID := uuid.New()
	_, err := svc.SendMessage(context.Background(), userID, "sess-1", "First question")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), userID, "sess-1", "A completely different topic")
	require.NoError(t, err)

	require.Equal(t, "First question", chats.sessions["sess-1"].Title)
}

func TestSendMessage_MintsUnknownSession(t *testing.T) {
	chats := newStubChatRepo()
	svc := newTestChatService(chats)

	userID := uuid.New()
	_, err := svc.SendMessage(context.Background(), userID, "sess-fresh", "Hello")
	require.NoError(t, err)
	require.Contains(t, chats.sessions, "sess-fresh")
}

func TestSendMessage_DegradedTutorStillPersistsUserMessage(t *testing.T) {
	chats := newStubChatRepo()
	svc := newTestChatService(chats)

	userID := uuid.New()
	reply, err := svc.SendMessage(context.Background(), userID, "sess-1", "Am I on track?")
	require.NoError(t, err)

	// The offline tutor returns its apology; the transcript still records
	// both messages.
	require.Contains(t, reply, "saved")
	require.Len(t, chats.messages["sess-1"], 2)
	require.Equal(t, "Am I on track?", chats.messages["sess-1"][0].Content)
}

func TestHistory_OtherUsersSessionForbidden(t *testing.T) {
	chats := newStubChatRepo()
	svc := newTestChatService(chats)

	owner := uuid.New()
	_, err := svc.CreateSession(context.Background(), owner, "sess-1")
	require.NoError(t, err)

	_, err = svc.History(context.Background(), uuid.New(), "sess-1")
	require.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestTitleFrom(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short line", "Career advice", "Career advice"},
		{"first line only", "Career advice\nand more detail", "Career advice"},
		{"truncated with ellipsis", strings.Repeat("a", 40), strings.Repeat("a", 30) + "..."},
		{"exactly at limit", strings.Repeat("b", 30), strings.Repeat("b", 30)},
		{"blank falls back", "   \nrest", defaultSessionTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, titleFrom(tt.content))
		})
	}
}
