package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/PrajithS20/SENTINEL/internal/agent"
	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/repository"
)

var (
	ErrChatSessionNotFound = errors.New("chat session not found")
	ErrNotSessionOwner     = errors.New("chat session belongs to another user")
)

const (
	defaultSessionTitle = "New Conversation"
	sessionTitleLimit   = 30
)

type ChatService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, sessionID string) (*model.ChatSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error)
	SendMessage(ctx context.Context, userID uuid.UUID, sessionID, content string) (string, error)
	History(ctx context.Context, userID uuid.UUID, sessionID string) ([]model.ChatMessage, error)
	RenameSession(ctx context.Context, userID uuid.UUID, sessionID, title string) error
	DeleteSession(ctx context.Context, userID uuid.UUID, sessionID string) error
}

type chatService struct {
	chatRepo    repository.ChatRepository
	profileRepo repository.ProfileRepository
	tutor       *agent.TutorAgent
}

func NewChatService(chatRepo repository.ChatRepository, profileRepo repository.ProfileRepository, tutor *agent.TutorAgent) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
		tutor:       tutor,
	}
}

// CreateSession registers a client-chosen session id. The insert is
// idempotent, so a retried create returns the session that already exists
// without disturbing its title or messages.
func (s *chatService) CreateSession(ctx context.Context, userID uuid.UUID, sessionID string) (*model.ChatSession, error) {
	session := &model.ChatSession{
		ID:     sessionID,
		UserID: userID,
		Title:  defaultSessionTitle,
	}

	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return s.ownedSession(ctx, userID, sessionID)
}

func (s *chatService) ListSessions(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error) {
	return s.chatRepo.ListSessions(ctx, userID)
}

// SendMessage appends the user's message, asks the tutor for a reply and
// appends that too. The user message is persisted before the tutor runs, so
// a degraded reply never loses what the user wrote. The first message of a
// session renames it after the message's opening line.
func (s *chatService) SendMessage(ctx context.Context, userID uuid.UUID, sessionID, content string) (string, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		if !errors.Is(err, ErrChatSessionNotFound) {
			return "", err
		}
		// Unknown session ids are minted on first use.
		if session, err = s.CreateSession(ctx, userID, sessionID); err != nil {
			return "", err
		}
	}

	count, err := s.chatRepo.CountMessages(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if count == 0 && session.Title == defaultSessionTitle {
		if err := s.chatRepo.RenameSession(ctx, sessionID, titleFrom(content)); err != nil {
			return "", err
		}
	}

	if err := s.chatRepo.AppendMessage(ctx, &model.ChatMessage{
		SessionID: sessionID,
		Role:      "user",
		Content:   content,
	}); err != nil {
		return "", err
	}

	role := ""
	var skills []string
	if profile, err := s.profileRepo.LatestForUser(ctx, userID); err == nil && profile != nil {
		role = profile.Role
		skills, _ = agent.SkillsFrom(profile.Analysis)
	}

	reply := s.tutor.Reply(ctx, role, skills, content)

	if err := s.chatRepo.AppendMessage(ctx, &model.ChatMessage{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   reply,
	}); err != nil {
		return "", err
	}

	return reply, nil
}

func (s *chatService) History(ctx context.Context, userID uuid.UUID, sessionID string) ([]model.ChatMessage, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.chatRepo.History(ctx, sessionID)
}

func (s *chatService) RenameSession(ctx context.Context, userID uuid.UUID, sessionID, title string) error {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.chatRepo.RenameSession(ctx, sessionID, title)
}

// DeleteSession removes the session and, through the foreign key cascade,
// every message in it.
func (s *chatService) DeleteSession(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.chatRepo.DeleteSession(ctx, sessionID)
}

func (s *chatService) ownedSession(ctx context.Context, userID uuid.UUID, sessionID string) (*model.ChatSession, error) {
	session, err := s.chatRepo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrChatSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// titleFrom derives a session title from the first line of the opening
// message, truncated to a sidebar-friendly length.
func titleFrom(content string) string {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultSessionTitle
	}
	runes := []rune(line)
	if len(runes) > sessionTitleLimit {
		return string(runes[:sessionTitleLimit]) + "..."
	}
	return line
}
