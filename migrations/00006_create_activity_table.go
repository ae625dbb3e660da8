package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateActivityTable, downCreateActivityTable)
}

func upCreateActivityTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE activity (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			activity_date DATE NOT NULL,
			hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			level INT NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, activity_date)
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateActivityTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS activity;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
