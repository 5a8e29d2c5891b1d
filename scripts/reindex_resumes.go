package main

import (
	"context"
	"log"

	"github.com/emiliell/MatchWise/internal/config"
	"github.com/emiliell/MatchWise/internal/repositories"
	"github.com/emiliell/MatchWise/internal/services"
)

// Rebuilds the Qdrant resume index from the stored candidate profiles,
// e.g. after the collection was wiped or the embedding model changed.
func main() {
	log.Println("🚀 Starting resume reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	candidateRepo := repositories.NewCandidateRepository(db)

	embedder, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	candidates, err := candidateRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to list candidates: %v", err)
	}

	log.Printf("📋 Found %d candidate profiles\n", len(candidates))

	ctx := context.Background()

	successCount := 0
	failCount := 0

	for _, candidate := range candidates {
		log.Printf("📄 Indexing: %s (%s)", candidate.OriginalFileName, candidate.ID)

		if candidate.ResumeText == "" {
			log.Println("   ⚠️  No resume text stored, skipping")
			failCount++
			continue
		}

		embedding, err := embedder.GenerateEmbedding(ctx, candidate.ResumeText)
		if err != nil {
			log.Printf("   ❌ Failed to embed: %v\n", err)
			failCount++
			continue
		}

		err = vectorStore.UpsertResume(ctx, candidate.ID, candidate.Email, candidate.OriginalFileName, embedding)
		if err != nil {
			log.Printf("   ❌ Failed to upsert: %v\n", err)
			failCount++
			continue
		}

		successCount++
	}

	log.Printf("✅ Reindex complete: %d indexed, %d failed\n", successCount, failCount)
}
