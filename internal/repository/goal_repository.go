package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) (uuid.UUID, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Goal, error)
	Toggle(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type postgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) GoalRepository {
	return &postgresGoalRepository{db: db}
}

func (r *postgresGoalRepository) Create(ctx context.Context, goal *model.Goal) (uuid.UUID, error) {
	query := `INSERT INTO goals (user_id, text, category, color, done) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, goal.UserID, goal.Text, goal.Category, goal.Color, goal.Done).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresGoalRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at, id`
	err := r.db.SelectContext(ctx, &goals, query, userID)

	if goals == nil {
		goals = []model.Goal{}
	}

	return goals, err
}

func (r *postgresGoalRepository) Toggle(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE goals SET done = NOT done WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

func (r *postgresGoalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}
