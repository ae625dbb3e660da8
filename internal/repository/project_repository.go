package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/PrajithS20/SENTINEL/internal/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	FindByTitleForUser(ctx context.Context, userID uuid.UUID, title string) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	SnapshotForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	AdvancePhase(ctx context.Context, id string, claimedPhase int) (bool, error)
	UpdateCode(ctx context.Context, id string, code string) error
	Delete(ctx context.Context, id string) error
}

type postgresProjectRepository struct {
	db *sqlx.DB
}

func NewPostgresProjectRepository(db *sqlx.DB) ProjectRepository {
	return &postgresProjectRepository{db: db}
}

func (r *postgresProjectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `
		INSERT INTO projects (id, user_id, title, tech, description, phases, total_phases, current_phase)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.UserID, project.Title, project.Tech, project.Description,
		project.Phases, project.TotalPhases, project.CurrentPhase,
	)
	return err
}

func (r *postgresProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	query := `SELECT * FROM projects WHERE id = $1`
	err := r.db.GetContext(ctx, &project, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

// FindByTitleForUser backs the idempotent start: a title is treated as a
// uniqueness key within one user's project set, not across the whole ledger.
func (r *postgresProjectRepository) FindByTitleForUser(ctx context.Context, userID uuid.UUID, title string) (*model.Project, error) {
	var project model.Project
	query := `SELECT * FROM projects WHERE user_id = $1 AND title = $2 LIMIT 1`
	err := r.db.GetContext(ctx, &project, query, userID, title)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *postgresProjectRepository) ListAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	query := `SELECT * FROM projects ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &projects, query)

	if projects == nil {
		projects = []model.Project{}
	}

	return projects, err
}

func (r *postgresProjectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	query := `SELECT * FROM projects WHERE user_id = $1 ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &projects, query, userID)

	if projects == nil {
		projects = []model.Project{}
	}

	return projects, err
}

// SnapshotForUser reads the user's projects inside a read-only transaction so
// the growth recomputation never sees a half-applied cursor write.
func (r *postgresProjectRepository) SnapshotForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var projects []model.Project
	query := `SELECT * FROM projects WHERE user_id = $1`
	if err := tx.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if projects == nil {
		projects = []model.Project{}
	}

	return projects, nil
}

// AdvancePhase performs the read-check-write of a phase unlock as one
// conditional statement. The cursor moves forward exactly one step and only
// when the caller's claimed phase still matches; a stale or replayed claim
// affects zero rows. Returns whether the cursor actually advanced.
func (r *postgresProjectRepository) AdvancePhase(ctx context.Context, id string, claimedPhase int) (bool, error) {
	query := `
		UPDATE projects
		SET current_phase = current_phase + 1, updated_at = now()
		WHERE id = $1 AND current_phase = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, claimedPhase)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// UpdateCode is last-writer-wins; concurrent collaborators overwrite each
// other without conflict detection.
func (r *postgresProjectRepository) UpdateCode(ctx context.Context, id string, code string) error {
	query := `UPDATE projects SET code = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, code)
	return err
}

func (r *postgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
