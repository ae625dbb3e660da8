package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProfilesTable, downCreateProfilesTable)
}

func upCreateProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role TEXT NOT NULL DEFAULT '',
			analysis JSONB NOT NULL DEFAULT '{}',
			suggested_projects JSONB NOT NULL DEFAULT '[]',
			job_matches JSONB,
			job_matches_updated_at TIMESTAMP WITH TIME ZONE,
			growth_stage TEXT NOT NULL DEFAULT 'Sprout',
			display_name TEXT,
			display_email TEXT,
			location TEXT,
			avatar_url TEXT,
			bio TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
		CREATE INDEX idx_profiles_user_created ON profiles(user_id, created_at DESC);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS profiles;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
