package services

import (
	"strings"
	"sync"
)

// ExtractionResult carries the skills recognized in one text plus the
// input's byte length for diagnostics. It is built fresh per call and
// never cached.
type ExtractionResult struct {
	Skills    SkillSet
	TextBytes int
}

// ExtractorService turns raw text into a normalized SkillSet using a
// named-entity recognition model. The contract is model-agnostic:
// callers only see "text in, term set out".
type ExtractorService interface {
	ExtractSkills(text string) SkillSet
	Extract(text string) ExtractionResult
}

type extractorService struct {
	modelPath string

	once  sync.Once
	model Recognizer
}

// NewExtractorService builds an extractor backed by the lexicon at
// modelPath (empty selects the embedded default). The model is loaded
// lazily on first extraction and shared by all callers.
func NewExtractorService(modelPath string) ExtractorService {
	return &extractorService{modelPath: modelPath}
}

func (e *extractorService) recognizer() Recognizer {
	e.once.Do(func() {
		e.model = LoadRecognizer(e.modelPath)
	})
	return e.model
}

// Labels the recognition model may attach to a technology/organization
// term.
var skillLabels = map[string]struct{}{
	"ORG":        {},
	"TECHNOLOGY": {},
	"TECH":       {},
}

// ExtractSkills implements ExtractorService. Empty or whitespace-only
// input yields an empty set, never an error.
func (e *extractorService) ExtractSkills(text string) SkillSet {
	skills := SkillSet{}
	if strings.TrimSpace(text) == "" {
		return skills
	}

	for _, entity := range e.recognizer().Entities(text) {
		if _, ok := skillLabels[entity.Label]; ok {
			skills.Add(entity.Text)
		}
	}

	return skills
}

// Extract implements ExtractorService.
func (e *extractorService) Extract(text string) ExtractionResult {
	return ExtractionResult{
		Skills:    e.ExtractSkills(text),
		TextBytes: len(text),
	}
}
