package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/models"
	"github.com/emiliell/MatchWise/internal/repositories"
)

type stubCandidateRepo struct {
	candidates []models.Candidate
	listErr    error
}

func (s *stubCandidateRepo) Create(candidate *models.Candidate) error { return nil }

func (s *stubCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			return &s.candidates[i], nil
		}
	}
	return nil, repositories.ErrCandidateNotFound
}

func (s *stubCandidateRepo) FindOwned(id uuid.UUID, actorEmail string) (*models.Candidate, error) {
	for i := range s.candidates {
		if s.candidates[i].ID == id && s.candidates[i].Email == actorEmail {
			return &s.candidates[i], nil
		}
	}
	return nil, repositories.ErrCandidateNotFound
}

func (s *stubCandidateRepo) FindByEmail(email string) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, candidate := range s.candidates {
		if candidate.Email == email {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func (s *stubCandidateRepo) FindAll() ([]models.Candidate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.candidates, nil
}

func (s *stubCandidateRepo) FindByIDs(ids []uuid.UUID) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, id := range ids {
		if candidate, err := s.FindByID(id); err == nil {
			out = append(out, *candidate)
		}
	}
	return out, nil
}

type stubHistoryRepo struct {
	mu      sync.Mutex
	records []models.ComparisonRecord
	err     error
}

func (s *stubHistoryRepo) Create(record *models.ComparisonRecord) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

func (s *stubHistoryRepo) FindByActor(actorEmail string) ([]models.ComparisonRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ComparisonRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].ActorEmail == actorEmail {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *stubHistoryRepo) DeleteOwned(id uuid.UUID, actorEmail string) error { return nil }

func (s *stubHistoryRepo) DeleteAllByActor(actorEmail string) (int64, error) { return 0, nil }

func newTestMatcher(candidateRepo repositories.CandidateRepository, historyRepo repositories.HistoryRepository, embedder Embedder, policy string) MatcherService {
	return NewMatcherService(
		candidateRepo,
		historyRepo,
		NewExtractorService(""),
		NewSimilarityService(embedder),
		embedder,
		nil,
		policy,
		0,
		4,
	)
}

func TestCompareResumeCoveragePolicy(t *testing.T) {
	resumeID := uuid.New()
	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{{
		ID:     resumeID,
		Email:  "jane@example.com",
		Name:   "Jane",
		Skills: []string{"python", "flask"},
	}}}
	historyRepo := &stubHistoryRepo{}

	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicyCoverage)

	result, err := matcher.CompareResume(
		context.Background(),
		"jane@example.com",
		resumeID,
		"Looking for a Python developer with Django experience",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// jd skills {python, django} vs resume {python, flask}: one of
	// three terms shared.
	if result.MatchScore != 33.3 {
		t.Fatalf("MatchScore = %v, want 33.3", result.MatchScore)
	}
	// No required block, so success degrades to the jaccard score.
	if result.SuccessRate != 33.3 {
		t.Fatalf("SuccessRate = %v, want 33.3", result.SuccessRate)
	}
	if len(result.MatchedSkills) != 1 || result.MatchedSkills[0] != "python" {
		t.Fatalf("MatchedSkills = %v, want [python]", result.MatchedSkills)
	}
	if len(result.JobSkills) != 2 {
		t.Fatalf("JobSkills = %v, want two skills", result.JobSkills)
	}
}

func TestCompareResumeCoveragePolicyWithRequiredBlock(t *testing.T) {
	resumeID := uuid.New()
	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{{
		ID:     resumeID,
		Email:  "jane@example.com",
		Skills: []string{"python", "flask"},
	}}}
	historyRepo := &stubHistoryRepo{}

	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicyCoverage)

	jobText := "Requirements: Python and Django\n\nNice to have: Kubernetes"
	result, err := matcher.CompareResume(context.Background(), "jane@example.com", resumeID, jobText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// jd skills {python, django, kubernetes}, resume {python, flask}:
	// jaccard = 100/4 = 25.0. Required block covers {python, django},
	// half held: success = 0.6*25 + 40*0.5 = 35.0.
	if result.MatchScore != 25.0 {
		t.Fatalf("MatchScore = %v, want 25.0", result.MatchScore)
	}
	if result.SuccessRate != 35.0 {
		t.Fatalf("SuccessRate = %v, want 35.0", result.SuccessRate)
	}
}

func TestCompareResumeSemanticPolicy(t *testing.T) {
	resumeID := uuid.New()
	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{{
		ID:         resumeID,
		Email:      "jane@example.com",
		Skills:     []string{"python", "flask"},
		ResumeText: "resume body",
	}}}
	historyRepo := &stubHistoryRepo{}

	// Without an embedder the semantic signal is zero and only coverage
	// drives the blend: cov = 1/2.
	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicySemantic)

	result, err := matcher.CompareResume(
		context.Background(),
		"jane@example.com",
		resumeID,
		"Looking for a Python developer with Django experience",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MatchScore != 17.5 {
		t.Fatalf("MatchScore = %v, want 17.5", result.MatchScore)
	}
	if result.SuccessRate != 16.8 {
		t.Fatalf("SuccessRate = %v, want 16.8", result.SuccessRate)
	}
}

func TestCompareResumeZeroCoverageCapped(t *testing.T) {
	resumeID := uuid.New()
	jobText := "Looking for a Python developer with Django experience"
	resumeText := "completely unrelated prose"

	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{{
		ID:         resumeID,
		Email:      "jane@example.com",
		Skills:     []string{"haskell"},
		ResumeText: resumeText,
	}}}
	historyRepo := &stubHistoryRepo{}

	// Identical embeddings: the texts read as semantically identical
	// even though no skill matches.
	embedder := &stubEmbedder{vectors: map[string][]float32{
		jobText:    {1, 2, 3},
		resumeText: {1, 2, 3},
	}}

	matcher := newTestMatcher(candidateRepo, historyRepo, embedder, PolicySemantic)

	result, err := matcher.CompareResume(context.Background(), "jane@example.com", resumeID, jobText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MatchScore != 65.0 {
		t.Fatalf("MatchScore = %v, want 65.0", result.MatchScore)
	}
	if result.SuccessRate != 15.0 {
		t.Fatalf("SuccessRate = %v, want capped 15.0", result.SuccessRate)
	}
}

func TestCompareResumeRefusesForeignResume(t *testing.T) {
	resumeID := uuid.New()
	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{{
		ID:     resumeID,
		Email:  "jane@example.com",
		Skills: []string{"python"},
	}}}
	historyRepo := &stubHistoryRepo{}

	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicySemantic)

	_, err := matcher.CompareResume(context.Background(), "intruder@example.com", resumeID, "Python role")
	if err != repositories.ErrCandidateNotFound {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}

	// Refused before scoring: nothing may reach the history.
	if len(historyRepo.records) != 0 {
		t.Fatalf("history written for refused comparison: %v", historyRepo.records)
	}
}

func TestCompareResumeRecordsHistory(t *testing.T) {
	resumeID := uuid.New()
	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{{
		ID:     resumeID,
		Email:  "jane@example.com",
		Skills: []string{"python", "flask"},
	}}}
	historyRepo := &stubHistoryRepo{}

	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicyCoverage)

	jobText := "Looking for a Python developer with Django experience"
	result, err := matcher.CompareResume(context.Background(), "jane@example.com", resumeID, jobText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := historyRepo.FindByActor("jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}

	// The read-back record reproduces the returned scores exactly.
	record := records[0]
	if record.MatchScore != result.MatchScore || record.SuccessRate != result.SuccessRate {
		t.Fatalf("record scores %v/%v do not match result %v/%v",
			record.MatchScore, record.SuccessRate, result.MatchScore, result.SuccessRate)
	}
	if len(record.MatchedSkills) != len(result.MatchedSkills) {
		t.Fatalf("record matched skills %v, want %v", record.MatchedSkills, result.MatchedSkills)
	}
	if record.ResumeID != resumeID {
		t.Fatalf("record resume id = %v, want %v", record.ResumeID, resumeID)
	}
	if record.JobExcerpt != jobText {
		t.Fatalf("record excerpt = %q, want %q", record.JobExcerpt, jobText)
	}
}

func TestCompareResumeSurvivesHistoryFailure(t *testing.T) {
	resumeID := uuid.New()
	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{{
		ID:     resumeID,
		Email:  "jane@example.com",
		Skills: []string{"python"},
	}}}
	historyRepo := &stubHistoryRepo{err: fmt.Errorf("storage down")}

	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicyCoverage)

	result, err := matcher.CompareResume(
		context.Background(),
		"jane@example.com",
		resumeID,
		"Looking for a Python developer",
	)
	if err != nil {
		t.Fatalf("history failure must not invalidate scores: %v", err)
	}
	if result == nil || result.MatchScore == 0.0 {
		t.Fatalf("expected a scored result, got %+v", result)
	}
}

func TestMatchPoolRanksCandidates(t *testing.T) {
	strong := models.Candidate{
		ID:     uuid.New(),
		Email:  "strong@example.com",
		Name:   "Strong",
		Skills: []string{"python", "django"},
	}
	weak := models.Candidate{
		ID:     uuid.New(),
		Email:  "weak@example.com",
		Name:   "Weak",
		Skills: []string{"python"},
	}
	none := models.Candidate{
		ID:     uuid.New(),
		Email:  "none@example.com",
		Name:   "None",
		Skills: []string{"cobol"},
	}

	candidateRepo := &stubCandidateRepo{candidates: []models.Candidate{none, weak, strong}}
	historyRepo := &stubHistoryRepo{}

	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicySemantic)

	jobSkills, results, err := matcher.MatchPool(
		context.Background(),
		"recruiter@corp.com",
		"Looking for a Python developer with Django experience",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jobSkills) != 2 {
		t.Fatalf("jobSkills = %v, want two skills", jobSkills)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Email != "strong@example.com" {
		t.Fatalf("best candidate = %s, want strong@example.com", results[0].Email)
	}
	if results[2].Email != "none@example.com" {
		t.Fatalf("worst candidate = %s, want none@example.com", results[2].Email)
	}

	for i := 1; i < len(results); i++ {
		if results[i].SuccessRate > results[i-1].SuccessRate {
			t.Fatalf("results not sorted by success rate: %v", results)
		}
	}

	// One history record per scored pair.
	records, _ := historyRepo.FindByActor("recruiter@corp.com")
	if len(records) != 3 {
		t.Fatalf("expected 3 history records, got %d", len(records))
	}
}

func TestMatchPoolEmptyPool(t *testing.T) {
	candidateRepo := &stubCandidateRepo{}
	historyRepo := &stubHistoryRepo{}

	matcher := newTestMatcher(candidateRepo, historyRepo, nil, PolicySemantic)

	_, results, err := matcher.MatchPool(context.Background(), "recruiter@corp.com", "Python role")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %v", results)
	}
}
