package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/PrajithS20/SENTINEL/internal/agent"
	"github.com/PrajithS20/SENTINEL/internal/events"
	"github.com/PrajithS20/SENTINEL/internal/growth"
	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/repository"
)

var ErrProjectNotFound = errors.New("project not found")

// UnlockStatus reports the outcome of a phase unlock attempt. A claimed phase
// that no longer matches the stored cursor is a no-op, not an error, so
// double-clicks and replays cannot double-advance.
type UnlockStatus int

const (
	UnlockUpdated UnlockStatus = iota
	UnlockNoChange
	UnlockNotFound
)

type UnlockResult struct {
	Status  UnlockStatus
	Project *model.Project
	Stage   string
}

type ProjectService interface {
	StartProject(ctx context.Context, userID uuid.UUID, title, tech, description string) (*model.Project, bool, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	Workspace(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	AllProjects(ctx context.Context) ([]model.Project, error)
	UnlockPhase(ctx context.Context, projectID string, claimedPhase int) (UnlockResult, error)
	SyncCode(ctx context.Context, projectID, code string) error
	DeleteProject(ctx context.Context, projectID string) error
	ArchitectChat(ctx context.Context, projectID, message, code string) (string, error)
	ValidatePhaseCode(ctx context.Context, projectID, code string) (agent.ValidationResult, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	profileRepo repository.ProfileRepository
	mirror      *agent.MirrorAgent
	foundry     *agent.FoundryAgent
	publisher   events.EventPublisher
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	profileRepo repository.ProfileRepository,
	mirror *agent.MirrorAgent,
	foundry *agent.FoundryAgent,
	publisher events.EventPublisher,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		mirror:      mirror,
		foundry:     foundry,
		publisher:   publisher,
	}
}

// StartProject is idempotent per (user, title): starting an already-started
// project returns the existing ledger entry with its phase cursor intact.
// The bool reports whether a new project was created.
func (s *projectService) StartProject(ctx context.Context, userID uuid.UUID, title, tech, description string) (*model.Project, bool, error) {
	existing, err := s.projectRepo.FindByTitleForUser(ctx, userID, title)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	phases := s.mirror.GeneratePhases(ctx, title, tech)

	project := &model.Project{
		ID:           newProjectID(),
		UserID:       &userID,
		Title:        title,
		Tech:         tech,
		Description:  description,
		Phases:       phases,
		TotalPhases:  len(phases),
		CurrentPhase: 1,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
			return nil, false, err
		}
		// Id collision; mint a fresh one and retry once.
		project.ID = newProjectID()
		if retryErr := s.projectRepo.Create(ctx, project); retryErr != nil {
			return nil, false, retryErr
		}
	}

	return project, true, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *projectService) Workspace(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	return s.projectRepo.ListForUser(ctx, userID)
}

func (s *projectService) AllProjects(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.ListAll(ctx)
}

// UnlockPhase advances the cursor only when the caller's claimed phase still
// matches the stored one. The advance itself is a single conditional update;
// the growth stage is then re-derived from a fresh snapshot, so even if the
// re-sync races another unlock the persisted stage converges on the full
// project state rather than drifting by one event.
func (s *projectService) UnlockPhase(ctx context.Context, projectID string, claimedPhase int) (UnlockResult, error) {
	advanced, err := s.projectRepo.AdvancePhase(ctx, projectID, claimedPhase)
	if err != nil {
		return UnlockResult{}, err
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return UnlockResult{}, err
	}
	if project == nil {
		return UnlockResult{Status: UnlockNotFound}, nil
	}

	if !advanced {
		return UnlockResult{Status: UnlockNoChange, Project: project}, nil
	}

	stage := ""
	if project.UserID != nil {
		stage = s.resyncGrowthStage(ctx, *project.UserID)
	}

	go func(p model.Project, newStage string) {
		if err := s.publisher.PublishPhaseUnlocked(&p, newStage); err != nil {
			slog.Warn("failed to publish phase unlock event", "project_id", p.ID, "error", err)
		}
	}(*project, stage)

	return UnlockResult{Status: UnlockUpdated, Project: project, Stage: stage}, nil
}

// resyncGrowthStage recomputes the stage from all of the user's projects and
// persists it on the latest profile. Failures here never roll back the
// unlock; they are logged and the next recompute heals the stored value.
func (s *projectService) resyncGrowthStage(ctx context.Context, userID uuid.UUID) string {
	projects, err := s.projectRepo.SnapshotForUser(ctx, userID)
	if err != nil {
		slog.Warn("growth stage re-sync skipped, snapshot failed", "user_id", userID, "error", err)
		return ""
	}

	stage := growth.StageFor(projects)

	profile, err := s.profileRepo.LatestForUser(ctx, userID)
	if err != nil || profile == nil {
		return stage
	}

	if profile.GrowthStage != stage {
		if err := s.profileRepo.UpdateGrowthStage(ctx, profile.ID, stage); err != nil {
			slog.Warn("failed to persist growth stage", "profile_id", profile.ID, "error", err)
		}
	}

	return stage
}

// SyncCode overwrites the stored editor buffer. Last writer wins; there is
// no merge.
func (s *projectService) SyncCode(ctx context.Context, projectID, code string) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return s.projectRepo.UpdateCode(ctx, projectID, code)
}

// DeleteProject removes the project if it exists. Deleting an unknown id is
// a no-op, so replayed deletes always succeed.
func (s *projectService) DeleteProject(ctx context.Context, projectID string) error {
	return s.projectRepo.Delete(ctx, projectID)
}

// ArchitectChat answers a question about the project's current phase with
// the user's editor buffer as context.
func (s *projectService) ArchitectChat(ctx context.Context, projectID, message, code string) (string, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	title, objective := currentPhaseContext(project)
	return s.foundry.ChatArchitect(ctx, message, code, project.Title, title, objective), nil
}

// ValidatePhaseCode reviews the submitted code against the current phase's
// objective. Approval is advisory; unlocking the phase remains the caller's
// separate, explicit step.
func (s *projectService) ValidatePhaseCode(ctx context.Context, projectID, code string) (agent.ValidationResult, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return agent.ValidationResult{}, err
	}

	_, objective := currentPhaseContext(project)
	return s.foundry.ValidateCode(ctx, code, objective), nil
}

func currentPhaseContext(project *model.Project) (title, objective string) {
	for _, phase := range project.Phases {
		if phase.ID == project.CurrentPhase {
			return phase.Title, phase.Description
		}
	}
	return "", ""
}

// newProjectID stamps the creation second and appends a random suffix so
// two starts in the same second still get distinct ids.
func newProjectID() string {
	return fmt.Sprintf("proj_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
}
