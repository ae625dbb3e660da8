package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCommunityTables, downCreateCommunityTables)
}

func upCreateCommunityTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE channels (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			category TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE community_messages (
			id BIGSERIAL PRIMARY KEY,
			channel_id UUID NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			message_type TEXT NOT NULL DEFAULT 'text',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
		CREATE INDEX idx_community_messages_channel_id ON community_messages(channel_id);

		INSERT INTO channels (name, category) VALUES
			('general', 'community'),
			('introductions', 'community'),
			('project-showcase', 'projects'),
			('pair-programming', 'projects'),
			('career-advice', 'careers'),
			('job-hunt', 'careers');
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateCommunityTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		DROP TABLE IF EXISTS community_messages;
		DROP TABLE IF EXISTS channels;
	`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
