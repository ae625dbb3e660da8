package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PrajithS20/SENTINEL/internal/model"
	"github.com/PrajithS20/SENTINEL/internal/service"
)

// GoalHandler covers the dashboard widgets: weekly goals and the activity
// heatmap.
type GoalHandler struct {
	goalService     service.GoalService
	activityService service.ActivityService
	validate        *validator.Validate
}

func NewGoalHandler(goalService service.GoalService, activityService service.ActivityService) *GoalHandler {
	return &GoalHandler{
		goalService:     goalService,
		activityService: activityService,
		validate:        validator.New(),
	}
}

type CreateGoalRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=200"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request CreateGoalRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	goal, err := h.goalService.CreateGoal(c.Context(), &model.Goal{
		UserID:   userID,
		Text:     request.Text,
		Category: request.Category,
		Color:    request.Color,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	goals, err := h.goalService.ListGoals(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"goals": goals})
}

func (h *GoalHandler) Toggle(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid goal id"})
	}

	if err := h.goalService.ToggleGoal(c.Context(), goalID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Goal toggled"})
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid goal id"})
	}

	if err := h.goalService.DeleteGoal(c.Context(), goalID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Goal deleted"})
}

type LogActivityRequest struct {
	Date  string  `json:"date" validate:"required,datetime=2006-01-02"`
	Hours float64 `json:"hours" validate:"required,gt=0,lte=24"`
	Level int     `json:"level" validate:"min=0,max=4"`
}

func (h *GoalHandler) LogActivity(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request LogActivityRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	date, _ := time.Parse("2006-01-02", request.Date)

	if err := h.activityService.LogActivity(c.Context(), userID, date, request.Hours, request.Level); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Activity logged"})
}

func (h *GoalHandler) Heatmap(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	entries, err := h.activityService.Heatmap(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activity": entries})
}
