package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/repository"
)

type GoalService interface {
	CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]model.Goal, error)
	ToggleGoal(ctx context.Context, id, userID uuid.UUID) error
	DeleteGoal(ctx context.Context, id, userID uuid.UUID) error
}

type goalService struct {
	goalRepo repository.GoalRepository
}

func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	newID, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = newID
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	return s.goalRepo.ListForUser(ctx, userID)
}

func (s *goalService) ToggleGoal(ctx context.Context, id, userID uuid.UUID) error {
	return s.goalRepo.Toggle(ctx, id, userID)
}

func (s *goalService) DeleteGoal(ctx context.Context, id, userID uuid.UUID) error {
	return s.goalRepo.Delete(ctx, id, userID)
}
