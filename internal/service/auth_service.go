package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("session is missing or expired")
)

const sessionLifetime = time.Hour * 24 * 30

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, name string) (*model.User, error)
	LoginUser(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ResolveSession(ctx context.Context, token string) (*model.User, error)
	LogoutUser(ctx context.Context, token string) error
	SetAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *authService) RegisterUser(ctx context.Context, email, password, name string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = newID

	return user, nil
}

func (s *authService) LoginUser(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Burn a comparison anyway so a missing account costs roughly the
		// same as a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOa8B0vGzjXgmU4PPGeyXzVu6YPBkpWCa"), []byte(password))
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, err
	}

	authToken := &model.AuthToken{
		UserID:    user.ID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(sessionLifetime),
	}

	if err := s.tokenRepo.Create(ctx, authToken); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ResolveSession maps a bearer token back to its user; expired or unknown
// tokens resolve to ErrUnauthenticated before any protected operation runs.
func (s *authService) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	authToken, err := s.tokenRepo.FindValidByHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, authToken.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) LogoutUser(ctx context.Context, token string) error {
	return s.tokenRepo.Delete(ctx, hashToken(token))
}

func (s *authService) SetAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	return s.userRepo.UpdateAvatarURL(ctx, userID, avatarURL)
}

// newSessionToken draws 32 bytes from crypto/rand and encodes them URL-safe,
// yielding a fixed 43-character token.
func newSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
