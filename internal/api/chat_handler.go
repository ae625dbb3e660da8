package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/PrajithS20/SENTINEL/internal/service"
)

type ChatHandler struct {
	chatService service.ChatService
	validate    *validator.Validate
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validate:    validator.New(),
	}
}

type CreateSessionRequest struct {
	SessionID string `json:"session_id" validate:"required,min=1,max=64"`
}

func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request CreateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	session, err := h.chatService.CreateSession(c.Context(), userID, request.SessionID)
	if err != nil {
		return chatErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	sessions, err := h.chatService.ListSessions(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"sessions": sessions})
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request SendMessageRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	reply, err := h.chatService.SendMessage(c.Context(), userID, c.Params("id"), request.Content)
	if err != nil {
		return chatErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reply": reply})
}

func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	messages, err := h.chatService.History(c.Context(), userID, c.Params("id"))
	if err != nil {
		return chatErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"messages": messages})
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

func (h *ChatHandler) RenameSession(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request RenameSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if err := h.chatService.RenameSession(c.Context(), userID, c.Params("id"), request.Title); err != nil {
		return chatErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Session renamed"})
}

func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.chatService.DeleteSession(c.Context(), userID, c.Params("id")); err != nil {
		return chatErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Session deleted"})
}

func chatErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrChatSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat session not found"})
	case errors.Is(err, service.ErrNotSessionOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Chat session belongs to another user"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
