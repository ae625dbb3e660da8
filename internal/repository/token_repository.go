package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type TokenRepository interface {
	Create(ctx context.Context, token *model.AuthToken) error
	FindValidByHash(ctx context.Context, tokenHash string) (*model.AuthToken, error)
	Delete(ctx context.Context, tokenHash string) error
}

type postgresTokenRepository struct {
	db *sqlx.DB
}

func NewPostgresTokenRepository(db *sqlx.DB) TokenRepository {
	return &postgresTokenRepository{db: db}
}

func (r *postgresTokenRepository) Create(ctx context.Context, token *model.AuthToken) error {
	query := `INSERT INTO auth_tokens (user_id, token_hash, expires_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, token.UserID, token.TokenHash, token.ExpiresAt)
	return err
}

// FindValidByHash filters expiry in the query itself, so an expired row that
// still physically exists never resolves. Expired rows are left in place
// (lazy expiry, no background sweep).
func (r *postgresTokenRepository) FindValidByHash(ctx context.Context, tokenHash string) (*model.AuthToken, error) {
	var token model.AuthToken
	query := `SELECT * FROM auth_tokens WHERE token_hash = $1 AND expires_at > now()`
	err := r.db.GetContext(ctx, &token, query, tokenHash)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *postgresTokenRepository) Delete(ctx context.Context, tokenHash string) error {
	query := `DELETE FROM auth_tokens WHERE token_hash = $1`
	_, err := r.db.ExecContext(ctx, query, tokenHash)
	return err
}
