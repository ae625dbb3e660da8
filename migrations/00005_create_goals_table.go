package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateGoalsTable, downCreateGoalsTable)
}

func upCreateGoalsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE goals (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			done BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
		CREATE INDEX idx_goals_user_id ON goals(user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateGoalsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS goals;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
