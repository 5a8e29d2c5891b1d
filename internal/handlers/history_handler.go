package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/repositories"
)

type HistoryHandler struct {
	historyRepo repositories.HistoryRepository
}

func NewHistoryHandler(historyRepo repositories.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{historyRepo: historyRepo}
}

// HandleList handles GET /history: the actor's comparison records,
// newest first.
func (h *HistoryHandler) HandleList(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	records, err := h.historyRepo.FindByActor(actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list history",
		})
	}

	return c.JSON(fiber.Map{
		"history": records,
		"count":   len(records),
	})
}

// HandleDelete handles DELETE /history/:id. Records belong to their
// actor; anyone else's delete is a not-found.
func (h *HistoryHandler) HandleDelete(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid record ID format",
		})
	}

	if err := h.historyRepo.DeleteOwned(recordID, actor); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "History record not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "History record deleted",
	})
}

// HandleDeleteAll handles DELETE /history.
func (h *HistoryHandler) HandleDeleteAll(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	deleted, err := h.historyRepo.DeleteAllByActor(actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete history",
		})
	}

	return c.JSON(fiber.Map{
		"message": "History deleted",
		"deleted": deleted,
	})
}
