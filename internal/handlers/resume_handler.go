package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/repositories"
)

type ResumeHandler struct {
	candidateRepo repositories.CandidateRepository
}

func NewResumeHandler(candidateRepo repositories.CandidateRepository) *ResumeHandler {
	return &ResumeHandler{candidateRepo: candidateRepo}
}

// HandleList handles GET /resumes: the actor's uploaded resumes.
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	candidates, err := h.candidateRepo.FindByEmail(actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	return c.JSON(fiber.Map{
		"resumes": candidates,
		"count":   len(candidates),
	})
}

// HandleDownload handles GET /resumes/:id/file: pass-through download
// of the stored PDF under its original filename.
func (h *ResumeHandler) HandleDownload(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	candidate, err := h.candidateRepo.FindOwned(resumeID, actor)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	return c.Download(candidate.FilePath, candidate.OriginalFileName)
}
