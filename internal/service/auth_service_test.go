package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type stubUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uuid.UUID]*model.User
	created []*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*model.User{},
		byID:    map[uuid.UUID]*model.User{},
	}
}

func (s *stubUserRepo) Create(_ context.Context, user *model.User) (uuid.UUID, error) {
	id := uuid.New()
	u := *user
	u.ID = id
	s.byEmail[u.Email] = &u
	s.byID[id] = &u
	s.created = append(s.created, &u)
	return id, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUserRepo) UpdateAvatarURL(context.Context, uuid.UUID, string) error { return nil }

type stubTokenRepo struct {
	byHash map[string]*model.AuthToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{byHash: map[string]*model.AuthToken{}}
}

func (s *stubTokenRepo) Create(_ context.Context, token *model.AuthToken) error {
	t := *token
	s.byHash[t.TokenHash] = &t
	return nil
}

func (s *stubTokenRepo) FindValidByHash(_ context.Context, hash string) (*model.AuthToken, error) {
	t, ok := s.byHash[hash]
	if !ok || time.Now().After(t.ExpiresAt) {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

func (s *stubTokenRepo) Delete(_ context.Context, hash string) error {
	delete(s.byHash, hash)
	return nil
}

func registeredService(t *testing.T) (AuthService, *stubUserRepo, *stubTokenRepo) {
	t.Helper()
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := NewAuthService(users, tokens)

	_, err := svc.RegisterUser(context.Background(), "ada@example.com", "hunter2hunter2", "Ada")
	require.NoError(t, err)
	return svc, users, tokens
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	svc, users, _ := registeredService(t)
	_ = svc

	stored := users.byEmail["ada@example.com"]
	require.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))
}

func TestLoginUser_IssuesOpaqueToken(t *testing.T) {
	svc, _, tokens := registeredService(t)

	token, user, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "Ada", user.Name)

	// 32 random bytes, URL-safe, no padding.
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, 32)

	// Only the hash is stored, never the token itself.
	sum := sha256.Sum256([]byte(token))
	stored, ok := tokens.byHash[hex.EncodeToString(sum[:])]
	require.True(t, ok)
	require.True(t, stored.ExpiresAt.After(time.Now().Add(29*24*time.Hour)))
}

func TestLoginUser_WrongPassword(t *testing.T) {
	svc, _, _ := registeredService(t)

	_, _, err := svc.LoginUser(context.Background(), "ada@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	svc, _, _ := registeredService(t)

	_, _, err := svc.LoginUser(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveSession_RoundTrip(t *testing.T) {
	svc, _, _ := registeredService(t)

	token, user, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	resolved, err := svc.ResolveSession(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
}

func TestResolveSession_UnknownToken(t *testing.T) {
	svc, _, _ := registeredService(t)

	_, err := svc.ResolveSession(context.Background(), "not-a-real-token")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveSession_ExpiredToken(t *testing.T) {
	svc, _, tokens := registeredService(t)

	token, _, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(token))
	tokens.byHash[hex.EncodeToString(sum[:])].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = svc.ResolveSession(context.Background(), token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutUser_InvalidatesOnlyThatSession(t *testing.T) {
	svc, _, _ := registeredService(t)

	first, _, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	second, _, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.LogoutUser(context.Background(), first))

	_, err = svc.ResolveSession(context.Background(), first)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ResolveSession(context.Background(), second)
	require.NoError(t, err)
}
