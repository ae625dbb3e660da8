package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/PrajithS20/SENTINEL/internal/service"
)

type CommunityHandler struct {
	communityService service.CommunityService
	validate         *validator.Validate
}

func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		validate:         validator.New(),
	}
}

func (h *CommunityHandler) ListChannels(c *fiber.Ctx) error {
	channels, err := h.communityService.ListChannels(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"channels": channels})
}

func (h *CommunityHandler) Messages(c *fiber.Ctx) error {
	messages, err := h.communityService.Messages(c.Context(), c.Params("name"))
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Channel not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"messages": messages})
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (h *CommunityHandler) Post(c *fiber.Ctx) error {
	user, err := GetUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request PostMessageRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	msg, err := h.communityService.Post(c.Context(), user.ID, c.Params("name"), request.Content)
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Channel not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	msg.UserName = user.Name

	return c.Status(fiber.StatusCreated).JSON(msg)
}
