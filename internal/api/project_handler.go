package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/PrajithS20/SENTINEL/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
	validate       *validator.Validate
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		validate:       validator.New(),
	}
}

type StartProjectRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Tech        string `json:"tech_stack" validate:"required"`
	Description string `json:"description"`
}

// Start is idempotent per title: re-posting a started project returns the
// existing entry with 200 instead of creating a duplicate.
func (h *ProjectHandler) Start(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request StartProjectRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	project, created, err := h.projectService.StartProject(c.Context(), userID, request.Title, request.Tech, request.Description)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(project)
}

func (h *ProjectHandler) Workspace(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	projects, err := h.projectService.Workspace(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"projects": projects})
}

// ListAll returns every project regardless of owner.
func (h *ProjectHandler) ListAll(c *fiber.Ctx) error {
	projects, err := h.projectService.AllProjects(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"projects": projects})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.projectService.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return projectErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

type UnlockPhaseRequest struct {
	CurrentPhase int `json:"current_phase" validate:"required,min=1"`
}

// Unlock advances the phase cursor. A stale claimed phase yields 200 with
// changed=false rather than an error, so replays are harmless.
func (h *ProjectHandler) Unlock(c *fiber.Ctx) error {
	var request UnlockPhaseRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	result, err := h.projectService.UnlockPhase(c.Context(), c.Params("id"), request.CurrentPhase)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	switch result.Status {
	case service.UnlockNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	case service.UnlockNoChange:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"changed": false,
			"project": result.Project,
		})
	default:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"changed":      true,
			"project":      result.Project,
			"growth_stage": result.Stage,
		})
	}
}

type SyncCodeRequest struct {
	Code string `json:"code"`
}

func (h *ProjectHandler) SyncCode(c *fiber.Ctx) error {
	var request SyncCodeRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.projectService.SyncCode(c.Context(), c.Params("id"), request.Code); err != nil {
		return projectErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Code synced"})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.projectService.DeleteProject(c.Context(), c.Params("id")); err != nil {
		return projectErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Project deleted"})
}

type ArchitectChatRequest struct {
	Message string `json:"message" validate:"required"`
	Code    string `json:"code"`
}

func (h *ProjectHandler) ArchitectChat(c *fiber.Ctx) error {
	var request ArchitectChatRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	reply, err := h.projectService.ArchitectChat(c.Context(), c.Params("id"), request.Message, request.Code)
	if err != nil {
		return projectErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reply": reply})
}

type ValidateCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

func (h *ProjectHandler) ValidateCode(c *fiber.Ctx) error {
	var request ValidateCodeRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	result, err := h.projectService.ValidatePhaseCode(c.Context(), c.Params("id"), request.Code)
	if err != nil {
		return projectErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func projectErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrProjectNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
