package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type ActivityRepository interface {
	Log(ctx context.Context, userID uuid.UUID, date time.Time, hours float64, level int) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.ActivityEntry, error)
}

type postgresActivityRepository struct {
	db *sqlx.DB
}

func NewPostgresActivityRepository(db *sqlx.DB) ActivityRepository {
	return &postgresActivityRepository{db: db}
}

// Log merges into the existing (user, date) row: hours accumulate and the
// intensity level keeps its maximum. A second log for the same day never
// creates a duplicate row.
func (r *postgresActivityRepository) Log(ctx context.Context, userID uuid.UUID, date time.Time, hours float64, level int) error {
	query := `
		INSERT INTO activity (user_id, activity_date, hours, level)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, activity_date)
		DO UPDATE SET hours = activity.hours + EXCLUDED.hours, level = GREATEST(activity.level, EXCLUDED.level)
	`
	_, err := r.db.ExecContext(ctx, query, userID, date, hours, level)
	return err
}

func (r *postgresActivityRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	query := `SELECT * FROM activity WHERE user_id = $1 ORDER BY activity_date`
	err := r.db.SelectContext(ctx, &entries, query, userID)

	if entries == nil {
		entries = []model.ActivityEntry{}
	}

	return entries, err
}
