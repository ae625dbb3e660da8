package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PrajithS20/SENTINEL/internal/repository"
	"github.com/PrajithS20/SENTINEL/internal/service"
)

type ProfileHandler struct {
	profileService service.ProfileService
	validate       *validator.Validate
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validate:       validator.New(),
	}
}

type AnalyzeRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=20"`
	TargetRole string `json:"target_role" validate:"required,min=2"`
}

// Analyze runs the resume pipeline and appends a new profile snapshot.
func (h *ProfileHandler) Analyze(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request AnalyzeRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	profile, err := h.profileService.AnalyzeResume(c.Context(), userID, request.ResumeText, request.TargetRole)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *ProfileHandler) Latest(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.profileService.LatestProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No profile yet, analyze a resume first"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) History(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	summaries, err := h.profileService.History(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"history": summaries})
}

func (h *ProfileHandler) GetByID(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid profile id"})
	}

	profile, err := h.profileService.ProfileByID(c.Context(), userID, profileID)
	if err != nil {
		return profileErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid profile id"})
	}

	if err := h.profileService.DeleteProfile(c.Context(), userID, profileID); err != nil {
		return profileErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Profile deleted"})
}

type UpdateDisplayRequest struct {
	DisplayName  *string `json:"display_name" validate:"omitempty,min=2"`
	DisplayEmail *string `json:"display_email" validate:"omitempty,email"`
	Location     *string `json:"location"`
	AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
	Bio          *string `json:"bio" validate:"omitempty,max=500"`
}

func (h *ProfileHandler) UpdateDisplay(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request UpdateDisplayRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	profile, err := h.profileService.UpdateDisplay(c.Context(), userID, repository.ProfileDisplayUpdate{
		DisplayName:  request.DisplayName,
		DisplayEmail: request.DisplayEmail,
		Location:     request.Location,
		AvatarURL:    request.AvatarURL,
		Bio:          request.Bio,
	})
	if err != nil {
		return profileErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) JobMatches(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	matches, err := h.profileService.JobMatches(c.Context(), userID)
	if err != nil {
		return profileErrorResponse(c, err)
	}

	c.Set("Content-Type", "application/json")
	return c.Status(fiber.StatusOK).Send(matches)
}

func (h *ProfileHandler) LiveFeeds(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	feed, err := h.profileService.LiveFeeds(c.Context(), userID)
	if err != nil {
		return profileErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(feed)
}

func (h *ProfileHandler) Growth(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	status, err := h.profileService.GrowthStatus(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(status)
}

func profileErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	case errors.Is(err, service.ErrNotProfileOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Profile belongs to another user"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
