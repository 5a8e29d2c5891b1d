package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/models"
	"github.com/emiliell/MatchWise/internal/repositories"
	"github.com/emiliell/MatchWise/internal/services"
)

type CompareHandler struct {
	matcher services.MatcherService
}

func NewCompareHandler(matcher services.MatcherService) *CompareHandler {
	return &CompareHandler{matcher: matcher}
}

// HandleCompare handles POST /compare: one job description against one
// of the actor's stored resumes, scored synchronously.
func (h *CompareHandler) HandleCompare(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	var req models.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	if req.ResumeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_id is required",
		})
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_id format",
		})
	}

	result, err := h.matcher.CompareResume(c.Context(), actor, resumeID, req.JobDescription)
	if err != nil {
		// Unknown and unowned resumes are the same refusal on purpose.
		if err == repositories.ErrCandidateNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "That resume was not found in your account",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compare resume",
		})
	}

	return c.JSON(result)
}
