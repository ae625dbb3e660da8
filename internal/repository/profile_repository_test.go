package repository_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PrajithS20/SENTINEL/internal/model"
	repo "github.com/PrajithS20/SENTINEL/internal/repository"
)

func profileRows(id, userID uuid.UUID, role string, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "role", "analysis", "suggested_projects", "job_matches",
		"job_matches_updated_at", "growth_stage", "display_name", "display_email",
		"location", "avatar_url", "bio", "created_at",
	}).AddRow(
		id, userID, role, []byte(`{}`), []byte(`[]`), nil,
		nil, "Sprout", nil, nil,
		nil, nil, nil, createdAt,
	)
}

func TestPostgresProfileRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresProfileRepository(db)

	id := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO profiles (user_id, role, analysis, suggested_projects, growth_stage, display_name, display_email)`)).
		WithArgs(userID, "Backend Engineer", sqlmock.AnyArg(), sqlmock.AnyArg(), "Sprout", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	newID, err := r.Create(context.Background(), &model.Profile{
		UserID:            userID,
		Role:              "Backend Engineer",
		Analysis:          json.RawMessage(`{}`),
		SuggestedProjects: json.RawMessage(`[]`),
		GrowthStage:       "Sprout",
	})
	require.NoError(t, err)
	require.Equal(t, id, newID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_LatestForUser_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresProfileRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM profiles WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profile, err := r.LatestForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Nil(t, profile)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_LatestForUser_NewestWins(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresProfileRepository(db)

	userID := uuid.New()
	newest := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM profiles WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`)).
		WithArgs(userID).
		WillReturnRows(profileRows(newest, userID, "Data Engineer", time.Now()))

	profile, err := r.LatestForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, newest, profile.ID)
	require.Equal(t, "Data Engineer", profile.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_UpdateJobMatchesIfStale_Refreshes(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresProfileRepository(db)

	id := uuid.New()
	matches := json.RawMessage(`[{"title":"Go Developer"}]`)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE profiles`)).
		WithArgs(id, sqlmock.AnyArg(), "86400 seconds").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := r.UpdateJobMatchesIfStale(context.Background(), id, matches, 24*time.Hour)
	require.NoError(t, err)
	require.True(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_UpdateJobMatchesIfStale_CacheStillFresh(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresProfileRepository(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE profiles`)).
		WithArgs(id, sqlmock.AnyArg(), "86400 seconds").
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := r.UpdateJobMatchesIfStale(context.Background(), id, json.RawMessage(`[]`), 24*time.Hour)
	require.NoError(t, err)
	require.False(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_UpdateDisplay_PartialSet(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresProfileRepository(db)

	id := uuid.New()
	name := "Ada"
	bio := "Shipping things"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE profiles SET display_name = $1, bio = $2 WHERE id = $3`)).
		WithArgs(name, bio, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.UpdateDisplay(context.Background(), id, repo.ProfileDisplayUpdate{
		DisplayName: &name,
		Bio:         &bio,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_UpdateDisplay_EmptyPatch(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresProfileRepository(db)

	// Nothing to set, nothing hits the database.
	err := r.UpdateDisplay(context.Background(), uuid.New(), repo.ProfileDisplayUpdate{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
