package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProjectsTable, downCreateProjectsTable)
}

func upCreateProjectsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE projects (
			id TEXT PRIMARY KEY,
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			tech TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			phases JSONB NOT NULL DEFAULT '[]',
			total_phases INT NOT NULL DEFAULT 6,
			current_phase INT NOT NULL DEFAULT 1,
			code TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
		CREATE INDEX idx_projects_user_id ON projects(user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateProjectsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS projects;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
