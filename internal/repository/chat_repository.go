package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type ChatRepository interface {
	CreateSession(ctx context.Context, session *model.ChatSession) error
	FindSession(ctx context.Context, id string) (*model.ChatSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error)
	RenameSession(ctx context.Context, id string, title string) error
	DeleteSession(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, msg *model.ChatMessage) error
	History(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	CountMessages(ctx context.Context, sessionID string) (int, error)
}

type postgresChatRepository struct {
	db *sqlx.DB
}

func NewPostgresChatRepository(db *sqlx.DB) ChatRepository {
	return &postgresChatRepository{db: db}
}

// CreateSession is insert-if-absent: replayed creates for an existing id keep
// the original title and owner.
func (r *postgresChatRepository) CreateSession(ctx context.Context, session *model.ChatSession) error {
	query := `INSERT INTO chat_sessions (id, user_id, title) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, session.ID, session.UserID, session.Title)
	return err
}

func (r *postgresChatRepository) FindSession(ctx context.Context, id string) (*model.ChatSession, error) {
	var session model.ChatSession
	query := `SELECT * FROM chat_sessions WHERE id = $1`
	err := r.db.GetContext(ctx, &session, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &session, nil
}

func (r *postgresChatRepository) ListSessions(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	query := `SELECT * FROM chat_sessions WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &sessions, query, userID)

	if sessions == nil {
		sessions = []model.ChatSession{}
	}

	return sessions, err
}

func (r *postgresChatRepository) RenameSession(ctx context.Context, id string, title string) error {
	query := `UPDATE chat_sessions SET title = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, title)
	return err
}

// DeleteSession removes messages through the ON DELETE CASCADE foreign key.
func (r *postgresChatRepository) DeleteSession(ctx context.Context, id string) error {
	query := `DELETE FROM chat_sessions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *postgresChatRepository) AppendMessage(ctx context.Context, msg *model.ChatMessage) error {
	query := `INSERT INTO chat_messages (session_id, role, content) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, msg.SessionID, msg.Role, msg.Content)
	return err
}

// History replays the full transcript oldest first; the serial message id is
// the ordering key.
func (r *postgresChatRepository) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	query := `SELECT * FROM chat_messages WHERE session_id = $1 ORDER BY id ASC`
	err := r.db.SelectContext(ctx, &messages, query, sessionID)

	if messages == nil {
		messages = []model.ChatMessage{}
	}

	return messages, err
}

func (r *postgresChatRepository) CountMessages(ctx context.Context, sessionID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM chat_messages WHERE session_id = $1`
	err := r.db.GetContext(ctx, &count, query, sessionID)

	if err != nil {
		return 0, err
	}

	return count, nil
}
