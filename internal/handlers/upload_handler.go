package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/models"
	"github.com/emiliell/MatchWise/internal/repositories"
	"github.com/emiliell/MatchWise/internal/services"
)

type UploadHandler struct {
	candidateRepo repositories.CandidateRepository
	storage       services.StorageService
	pdfParser     services.PDFParserService
	extractor     services.ExtractorService
	embedder      services.Embedder
	vectorStore   services.VectorStoreService
	maxFileSize   int64
}

func NewUploadHandler(
	candidateRepo repositories.CandidateRepository,
	storage services.StorageService,
	pdfParser services.PDFParserService,
	extractor services.ExtractorService,
	embedder services.Embedder,
	vectorStore services.VectorStoreService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		candidateRepo: candidateRepo,
		storage:       storage,
		pdfParser:     pdfParser,
		extractor:     extractor,
		embedder:      embedder,
		vectorStore:   vectorStore,
		maxFileSize:   maxFileSize,
	}
}

// HandleUpload handles POST /resumes. Text and skills are extracted
// once here and reused for every later comparison against this resume.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	actor := actorEmail(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing actor identity",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "please choose a PDF to upload",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storage.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	resumeText, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not read that PDF. Please upload a text-based PDF",
		})
	}

	resumeText = services.TruncateRunes(services.CleanText(resumeText), services.ResumeTextLimit)
	skills := h.extractor.ExtractSkills(resumeText)

	candidate := models.Candidate{
		ID:               uuid.New(),
		Email:            actor,
		Name:             displayName(actor),
		ResumeFilename:   filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		ResumeText:       resumeText,
		Skills:           skills.Sorted(),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.candidateRepo.Create(&candidate); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save candidate profile",
		})
	}

	h.indexResume(c.Context(), &candidate)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Resume uploaded and skills extracted automatically",
		"resume": models.UploadResponse{
			ID:           candidate.ID.String(),
			Filename:     candidate.ResumeFilename,
			OriginalName: candidate.OriginalFileName,
			Skills:       candidate.Skills,
		},
	})
}

// indexResume pushes the resume embedding into the vector index. The
// index is best-effort: any failure is a warning and the upload stands.
func (h *UploadHandler) indexResume(ctx context.Context, candidate *models.Candidate) {
	if h.embedder == nil || h.vectorStore == nil {
		return
	}

	embedding, err := h.embedder.GenerateEmbedding(ctx, candidate.ResumeText)
	if err != nil {
		log.Printf("⚠️  Failed to embed resume %s: %v\n", candidate.ID, err)
		return
	}

	if err := h.vectorStore.UpsertResume(ctx, candidate.ID, candidate.Email, candidate.OriginalFileName, embedding); err != nil {
		log.Printf("⚠️  Failed to index resume %s: %v\n", candidate.ID, err)
	}
}
