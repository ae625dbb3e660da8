package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type ProfileDisplayUpdate struct {
	DisplayName  *string
	DisplayEmail *string
	Location     *string
	AvatarURL    *string
	Bio          *string
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) (uuid.UUID, error)
	LatestForUser(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.ProfileSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateGrowthStage(ctx context.Context, id uuid.UUID, stage string) error
	UpdateJobMatchesIfStale(ctx context.Context, id uuid.UUID, matches json.RawMessage, window time.Duration) (bool, error)
	UpdateDisplay(ctx context.Context, id uuid.UUID, update ProfileDisplayUpdate) error
}

type postgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) Create(ctx context.Context, profile *model.Profile) (uuid.UUID, error) {
	query := `
		INSERT INTO profiles (user_id, role, analysis, suggested_projects, growth_stage, display_name, display_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query,
		profile.UserID, profile.Role, profile.Analysis, profile.SuggestedProjects,
		profile.GrowthStage, profile.DisplayName, profile.DisplayEmail,
	).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

// LatestForUser returns the newest profile row for the user, or (nil, nil)
// when the user has never uploaded a resume.
func (r *postgresProfileRepository) LatestForUser(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	query := `SELECT * FROM profiles WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	err := r.db.GetContext(ctx, &profile, query, userID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &profile, nil
}

func (r *postgresProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	query := `SELECT * FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &profile, nil
}

func (r *postgresProfileRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.ProfileSummary, error) {
	var summaries []model.ProfileSummary
	query := `SELECT id, role, created_at FROM profiles WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &summaries, query, userID)

	if summaries == nil {
		summaries = []model.ProfileSummary{}
	}

	return summaries, err
}

func (r *postgresProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *postgresProfileRepository) UpdateGrowthStage(ctx context.Context, id uuid.UUID, stage string) error {
	query := `UPDATE profiles SET growth_stage = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, stage)
	return err
}

// UpdateJobMatchesIfStale writes the cached job matches only when the
// existing cache is older than the staleness window. The condition lives in
// the UPDATE itself so two concurrent refreshes cannot both win.
func (r *postgresProfileRepository) UpdateJobMatchesIfStale(ctx context.Context, id uuid.UUID, matches json.RawMessage, window time.Duration) (bool, error) {
	query := `
		UPDATE profiles
		SET job_matches = $2, job_matches_updated_at = now()
		WHERE id = $1
		  AND (job_matches_updated_at IS NULL OR job_matches_updated_at < now() - $3::interval)
	`
	interval := fmt.Sprintf("%d seconds", int(window.Seconds()))
	result, err := r.db.ExecContext(ctx, query, id, matches, interval)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *postgresProfileRepository) UpdateDisplay(ctx context.Context, id uuid.UUID, update ProfileDisplayUpdate) error {
	var setClauses []string
	var args []interface{}
	argId := 1

	if update.DisplayName != nil {
		setClauses = append(setClauses, fmt.Sprintf("display_name = $%d", argId))
		args = append(args, *update.DisplayName)
		argId++
	}
	if update.DisplayEmail != nil {
		setClauses = append(setClauses, fmt.Sprintf("display_email = $%d", argId))
		args = append(args, *update.DisplayEmail)
		argId++
	}
	if update.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", argId))
		args = append(args, *update.Location)
		argId++
	}
	if update.AvatarURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = $%d", argId))
		args = append(args, *update.AvatarURL)
		argId++
	}
	if update.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argId))
		args = append(args, *update.Bio)
		argId++
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE profiles SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argId)
	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}
