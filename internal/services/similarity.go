package services

import (
	"context"
	"log"
	"math"
	"strings"
)

// SimilarityService scores semantic closeness of two texts in [0,1].
type SimilarityService interface {
	SemanticSimilarity(ctx context.Context, textA, textB string) float64
}

type similarityService struct {
	embedder Embedder
}

// NewSimilarityService wraps an embedder. A nil embedder is allowed and
// means "no semantic signal": every similarity comes back 0 and scoring
// carries on with coverage alone.
func NewSimilarityService(embedder Embedder) SimilarityService {
	return &similarityService{embedder: embedder}
}

// SemanticSimilarity implements SimilarityService. Any encoding failure
// degrades to 0 rather than propagating; cosine can be negative, so the
// result is floored at 0.
func (s *similarityService) SemanticSimilarity(ctx context.Context, textA, textB string) float64 {
	if s.embedder == nil {
		return 0.0
	}
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return 0.0
	}

	vectorA, err := s.embedder.GenerateEmbedding(ctx, textA)
	if err != nil {
		log.Printf("⚠️  Embedding failed, treating similarity as zero: %v\n", err)
		return 0.0
	}

	vectorB, err := s.embedder.GenerateEmbedding(ctx, textB)
	if err != nil {
		log.Printf("⚠️  Embedding failed, treating similarity as zero: %v\n", err)
		return 0.0
	}

	return clamp(cosineSimilarity(vectorA, vectorB), 0.0, 1.0)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0.0 || normB == 0.0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
