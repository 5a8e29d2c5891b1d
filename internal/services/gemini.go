package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Embedder encodes text into a fixed-size vector. Implementations must
// be safe for concurrent use.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Maximum bytes handed to the embedding model per request; longer texts
// are chunked and mean-pooled.
const embedChunkSize = 30000

type geminiService struct {
	client     *genai.Client
	embedModel string
	chunker    TextChunker
}

func NewGeminiService(apiKey string) (Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		embedModel: "text-embedding-004",
		chunker:    NewTextChunker(),
	}, nil
}

// GenerateEmbedding implements Embedder. Texts beyond the per-request
// limit are windowed and the chunk vectors averaged, so arbitrarily
// long resumes still get one representative vector. No retries: a
// failed call is the caller's signal to degrade.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if len(text) <= embedChunkSize {
		return g.embedOne(ctx, text)
	}

	chunks := g.chunker.ChunkText(text, embedChunkSize)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no embeddable content")
	}

	var pooled []float64
	for _, chunk := range chunks {
		vector, err := g.embedOne(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if pooled == nil {
			pooled = make([]float64, len(vector))
		}
		if len(vector) != len(pooled) {
			return nil, fmt.Errorf("inconsistent embedding size: %d vs %d", len(vector), len(pooled))
		}
		for i, v := range vector {
			pooled[i] += float64(v)
		}
	}

	mean := make([]float32, len(pooled))
	for i, v := range pooled {
		mean[i] = float32(v / float64(len(chunks)))
	}
	return mean, nil
}

func (g *geminiService) embedOne(ctx context.Context, text string) ([]float32, error) {
	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
