package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/models"
	"github.com/emiliell/MatchWise/internal/repositories"
	"github.com/emiliell/MatchWise/internal/services"
)

type MatchHandler struct {
	jobRepo repositories.MatchJobRepository
	worker  services.Worker
}

func NewMatchHandler(
	jobRepo repositories.MatchJobRepository,
	worker services.Worker,
) *MatchHandler {
	return &MatchHandler{
		jobRepo: jobRepo,
		worker:  worker,
	}
}

// HandleMatch handles POST /match: queue a pool-match run of one job
// description against every stored candidate profile.
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	var req models.MatchRequest
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

	job := &models.MatchJob{
		ID:         uuid.New(),
		ActorEmail: actor,
		JobText:    req.JobDescription,
		Status:     models.StatusQueued,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create match job",
		})
	}

	// Enqueue job to worker
	h.worker.EnqueueJob(job.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.MatchResponse{
		ID:     job.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetMatch handles GET /match/:id.
func (h *MatchHandler) HandleGetMatch(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil || job.ActorEmail != actor {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Match job not found",
		})
	}

	response := models.MatchResultResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}

	if job.Status == models.StatusCompleted {
		response.JobSkills = job.JobSkills
		response.Results = job.Results
	}

	if job.Status == models.StatusFailed && job.ErrorMessage != nil {
		response.ErrorMessage = job.ErrorMessage
	}

	return c.JSON(response)
}
