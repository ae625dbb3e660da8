package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateChatTables, downCreateChatTables)
}

func upCreateChatTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE chat_sessions (
			id TEXT PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT 'New Chat',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE chat_messages (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
		CREATE INDEX idx_chat_messages_session_id ON chat_messages(session_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateChatTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		DROP TABLE IF EXISTS chat_messages;
		DROP TABLE IF EXISTS chat_sessions;
	`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
