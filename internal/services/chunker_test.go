package services

import (
	"strings"
	"testing"
)

func TestChunkTextShortInput(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("short paragraph", 100)
	if len(chunks) != 1 || chunks[0] != "short paragraph" {
		t.Fatalf("ChunkText() = %v, want single chunk", chunks)
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	if chunks := chunker.ChunkText("", 100); len(chunks) != 0 {
		t.Fatalf("ChunkText(\"\") = %v, want no chunks", chunks)
	}
	if chunks := chunker.ChunkText("\n\n  \n\n", 100); len(chunks) != 0 {
		t.Fatalf("whitespace input produced chunks: %v", chunks)
	}
}

func TestChunkTextRespectsMaxSize(t *testing.T) {
	chunker := NewTextChunker()

	var paragraphs []string
	for i := 0; i < 10; i++ {
		paragraphs = append(paragraphs, strings.Repeat("word ", 30))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := chunker.ChunkText(text, 400)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 400 {
			t.Fatalf("chunk %d exceeds max size: %d bytes", i, len(chunk))
		}
		if strings.TrimSpace(chunk) == "" {
			t.Fatalf("chunk %d is blank", i)
		}
	}
}

func TestChunkTextHardSplitsLongParagraph(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("verylongword ", 100) // single paragraph, ~1300 bytes

	chunks := chunker.ChunkText(text, 300)
	if len(chunks) < 4 {
		t.Fatalf("expected hard splits, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 300 {
			t.Fatalf("chunk %d exceeds max size: %d bytes", i, len(chunk))
		}
	}
}
