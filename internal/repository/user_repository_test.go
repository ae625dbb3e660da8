package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PrajithS20/SENTINEL/internal/model"
	repo "github.com/PrajithS20/SENTINEL/internal/repository"
)

func TestPostgresUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password_hash, name) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("a@b.com", "hash", "Name").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	newID, err := r.Create(context.Background(), &model.User{Email: "a@b.com", PasswordHash: "hash", Name: "Name"})
	require.NoError(t, err)
	require.Equal(t, id, newID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByEmail_Success(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "avatar_url", "created_at", "updated_at"}).
		AddRow(id, "a@b.com", "hash", "Name", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, name, avatar_url, created_at, updated_at FROM users WHERE email = $1`)).
		WithArgs("a@b.com").WillReturnRows(rows)

	u, err := r.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByID_Error(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, name, avatar_url, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	_, err := r.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_UpdateAvatarURL(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1`)).
		WithArgs(id, "https://cdn.example.com/a.jpg").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.UpdateAvatarURL(context.Background(), id, "https://cdn.example.com/a.jpg")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTokenRepository_FindValidByHash_FiltersExpiry(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresTokenRepository(db)

	// The query itself excludes expired rows; the repository never sees one.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM auth_tokens WHERE token_hash = $1 AND expires_at > now()`)).
		WithArgs("deadbeef").
		WillReturnError(sql.ErrNoRows)

	_, err := r.FindValidByHash(context.Background(), "deadbeef")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTokenRepository_FindValidByHash_Success(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPostgresTokenRepository(db)

	id := uuid.New()
	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "created_at"}).
		AddRow(id, userID, "deadbeef", time.Now().Add(time.Hour), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM auth_tokens WHERE token_hash = $1 AND expires_at > now()`)).
		WithArgs("deadbeef").
		WillReturnRows(rows)

	token, err := r.FindValidByHash(context.Background(), "deadbeef")
	require.NoError(t, err)
	require.Equal(t, userID, token.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}
