package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/PrajithS20/SENTINEL/internal/agent"
	"github.com/PrajithS20/SENTINEL/internal/growth"
	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNotProfileOwner = errors.New("profile belongs to another user")
)

// jobMatchRefreshWindow bounds how often the market agent runs per profile.
// Inside the window everyone is served the cached payload.
const jobMatchRefreshWindow = 24 * time.Hour

type GrowthStatus struct {
	Stage string `json:"growth_stage"`
	Trees int    `json:"trees"`
}

type ProfileService interface {
	AnalyzeResume(ctx context.Context, userID uuid.UUID, resumeText, targetRole string) (*model.Profile, error)
	LatestProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	ProfileByID(ctx context.Context, userID, profileID uuid.UUID) (*model.Profile, error)
	History(ctx context.Context, userID uuid.UUID) ([]model.ProfileSummary, error)
	DeleteProfile(ctx context.Context, userID, profileID uuid.UUID) error
	UpdateDisplay(ctx context.Context, userID uuid.UUID, update repository.ProfileDisplayUpdate) (*model.Profile, error)
	JobMatches(ctx context.Context, userID uuid.UUID) (json.RawMessage, error)
	LiveFeeds(ctx context.Context, userID uuid.UUID) (agent.LiveFeed, error)
	GrowthStatus(ctx context.Context, userID uuid.UUID) (GrowthStatus, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	projectRepo repository.ProjectRepository
	mirror      *agent.MirrorAgent
	lab         *agent.LabAgent
	market      *agent.MarketAgent
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	projectRepo repository.ProjectRepository,
	mirror *agent.MirrorAgent,
	lab *agent.LabAgent,
	market *agent.MarketAgent,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		mirror:      mirror,
		lab:         lab,
		market:      market,
	}
}

// AnalyzeResume runs the mirror and lab agents and appends a new profile
// snapshot. Earlier snapshots are never modified; the newest row wins.
func (s *profileService) AnalyzeResume(ctx context.Context, userID uuid.UUID, resumeText, targetRole string) (*model.Profile, error) {
	analysis, err := s.mirror.AnalyzeResume(ctx, resumeText, targetRole)
	if err != nil {
		return nil, err
	}

	_, gaps := agent.SkillsFrom(analysis)
	suggested := s.lab.GenerateProjects(ctx, gaps)

	stage := growth.Stage(0)
	if projects, err := s.projectRepo.ListForUser(ctx, userID); err == nil {
		stage = growth.StageFor(projects)
	}

	profile := &model.Profile{
		UserID:            userID,
		Role:              targetRole,
		Analysis:          analysis,
		SuggestedProjects: suggested,
		GrowthStage:       stage,
	}

	newID, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	profile.ID = newID
	profile.CreatedAt = time.Now()

	return profile, nil
}

func (s *profileService) LatestProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.LatestForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *profileService) ProfileByID(ctx context.Context, userID, profileID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.UserID != userID {
		return nil, ErrNotProfileOwner
	}
	return profile, nil
}

func (s *profileService) History(ctx context.Context, userID uuid.UUID) ([]model.ProfileSummary, error) {
	return s.profileRepo.ListForUser(ctx, userID)
}

func (s *profileService) DeleteProfile(ctx context.Context, userID, profileID uuid.UUID) error {
	if _, err := s.ProfileByID(ctx, userID, profileID); err != nil {
		return err
	}
	return s.profileRepo.Delete(ctx, profileID)
}

// UpdateDisplay patches the display fields of the latest snapshot only;
// historical snapshots keep the identity they were created with.
func (s *profileService) UpdateDisplay(ctx context.Context, userID uuid.UUID, update repository.ProfileDisplayUpdate) (*model.Profile, error) {
	profile, err := s.LatestProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateDisplay(ctx, profile.ID, update); err != nil {
		return nil, err
	}

	return s.profileRepo.FindByID(ctx, profile.ID)
}

// JobMatches serves the cached payload inside the refresh window and
// regenerates past it. The refresh is a conditional write, so two callers
// racing past a stale cache produce one regeneration; the loser rereads.
func (s *profileService) JobMatches(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	profile, err := s.LatestProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.JobMatches != nil && profile.JobMatchesUpdatedAt != nil &&
		time.Since(*profile.JobMatchesUpdatedAt) < jobMatchRefreshWindow {
		return profile.JobMatches, nil
	}

	skills, gaps := agent.SkillsFrom(profile.Analysis)
	matches := s.market.JobMatches(ctx, profile.Role, append(skills, gaps...))

	updated, err := s.profileRepo.UpdateJobMatchesIfStale(ctx, profile.ID, matches, jobMatchRefreshWindow)
	if err != nil {
		return nil, err
	}
	if updated {
		return matches, nil
	}

	// Someone else refreshed the cache first; return what they wrote.
	refreshed, err := s.profileRepo.FindByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if refreshed == nil || refreshed.JobMatches == nil {
		return matches, nil
	}
	return refreshed.JobMatches, nil
}

func (s *profileService) LiveFeeds(ctx context.Context, userID uuid.UUID) (agent.LiveFeed, error) {
	profile, err := s.LatestProfile(ctx, userID)
	if err != nil {
		return agent.LiveFeed{}, err
	}

	skills, _ := agent.SkillsFrom(profile.Analysis)
	return s.market.LiveFeeds(ctx, profile.Role, skills), nil
}

// GrowthStatus recomputes the stage from a consistent project snapshot
// rather than trusting the value persisted on the profile row.
func (s *profileService) GrowthStatus(ctx context.Context, userID uuid.UUID) (GrowthStatus, error) {
	projects, err := s.projectRepo.SnapshotForUser(ctx, userID)
	if err != nil {
		return GrowthStatus{}, err
	}

	trees := growth.Trees(projects)
	return GrowthStatus{
		Stage: growth.Stage(trees),
		Trees: trees,
	}, nil
}
