package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/repository"
)

type ActivityService interface {
	LogActivity(ctx context.Context, userID uuid.UUID, date time.Time, hours float64, level int) error
	Heatmap(ctx context.Context, userID uuid.UUID) ([]model.ActivityEntry, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

// LogActivity merges into the day's row: hours accumulate, level keeps its
// maximum. Days are truncated to dates so all logs within one calendar day
// land on the same row.
func (s *activityService) LogActivity(ctx context.Context, userID uuid.UUID, date time.Time, hours float64, level int) error {
	day := date.UTC().Truncate(24 * time.Hour)
	return s.activityRepo.Log(ctx, userID, day, hours, level)
}

func (s *activityService) Heatmap(ctx context.Context, userID uuid.UUID) ([]model.ActivityEntry, error) {
	return s.activityRepo.ListForUser(ctx, userID)
}
