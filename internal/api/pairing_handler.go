package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PrajithS20/SENTINEL/internal/pairing"
	"github.com/PrajithS20/SENTINEL/internal/service"
)

// PairingHandler mints and resolves short-lived pairing codes. Codes live in
// process memory only; a restart clears them all.
type PairingHandler struct {
	registry       pairing.Registry
	projectService service.ProjectService
}

func NewPairingHandler(registry pairing.Registry, projectService service.ProjectService) *PairingHandler {
	return &PairingHandler{
		registry:       registry,
		projectService: projectService,
	}
}

func (h *PairingHandler) CreateCode(c *fiber.Ctx) error {
	projectID := c.Params("id")

	// Only real projects get codes; a typo'd id fails here, not at resolve.
	if _, err := h.projectService.GetProject(c.Context(), projectID); err != nil {
		return projectErrorResponse(c, err)
	}

	code, err := h.registry.Create(projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create pairing code"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"code":       code,
		"expires_in": pairing.DefaultTTL.Seconds(),
	})
}

func (h *PairingHandler) Resolve(c *fiber.Ctx) error {
	code := c.Params("code")

	projectID, ok := h.registry.Resolve(code)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pairing code unknown or expired"})
	}

	project, err := h.projectService.GetProject(c.Context(), projectID)
	if err != nil {
		return projectErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(project)
}
