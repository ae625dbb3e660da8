package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PrajithS20/SENTINEL/internal/model"
	repo "github.com/PrajithS20/SENTINEL/internal/repository"
)

func TestPostgresGoalRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresGoalRepository(db)

	userID, goalID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO goals (user_id, text, category, color, done) VALUES ($1, $2, $3, $4, $5) RETURNING id`)).
		WithArgs(userID, "Ship the portfolio", "career", "green", false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(goalID))

	newID, err := r.Create(context.Background(), &model.Goal{
		UserID: userID, Text: "Ship the portfolio", Category: "career", Color: "green",
	})
	require.NoError(t, err)
	require.Equal(t, goalID, newID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGoalRepository_ListForUser_InsertionOrder(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresGoalRepository(db)

	userID := uuid.New()
	earlier := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "text", "category", "color", "done", "created_at"}).
		AddRow(uuid.New(), userID, "first", "", "", false, earlier).
		AddRow(uuid.New(), userID, "second", "", "", true, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at, id`)).
		WithArgs(userID).WillReturnRows(rows)

	goals, err := r.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	require.Equal(t, "first", goals[0].Text)
	require.Equal(t, "second", goals[1].Text)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGoalRepository_ListForUser_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresGoalRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at, id`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "text", "category", "color", "done", "created_at"}))

	goals, err := r.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, goals)
	require.Empty(t, goals)
	require.NoError(t, mock.ExpectationsWereMet())
}
