package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/models"
	"github.com/emiliell/MatchWise/internal/repositories"
)

// MatcherService is the scoring engine: it extracts skill sets from job
// and resume text, blends coverage and semantic signals into bounded
// scores, and records every scored pair in the comparison history.
type MatcherService interface {
	// CompareResume scores one job description against one of the
	// actor's stored resumes. Unknown and foreign resume ids are both
	// refused before any scoring work happens.
	CompareResume(ctx context.Context, actorEmail string, resumeID uuid.UUID, jobText string) (*models.CompareResponse, error)
	// MatchPool scores one job description against every stored
	// candidate profile, best matches first. Returns the extracted job
	// skills alongside the per-candidate results.
	MatchPool(ctx context.Context, actorEmail, jobText string) ([]string, []models.PoolMatchResult, error)
}

type matcherService struct {
	candidateRepo repositories.CandidateRepository
	historyRepo   repositories.HistoryRepository
	extractor     ExtractorService
	similarity    SimilarityService
	embedder      Embedder
	vectorStore   VectorStoreService
	policy        string
	shortlist     int
	parallelism   int
}

// NewMatcherService wires the engine. embedder and vectorStore may be
// nil: the pool flow then always scans every profile and the semantic
// signal degrades to zero under the semantic policy.
func NewMatcherService(
	candidateRepo repositories.CandidateRepository,
	historyRepo repositories.HistoryRepository,
	extractor ExtractorService,
	similarity SimilarityService,
	embedder Embedder,
	vectorStore VectorStoreService,
	policy string,
	shortlist int,
	parallelism int,
) MatcherService {
	if policy != PolicyCoverage {
		policy = PolicySemantic
	}
	if parallelism < 1 {
		parallelism = 1
	}

	return &matcherService{
		candidateRepo: candidateRepo,
		historyRepo:   historyRepo,
		extractor:     extractor,
		similarity:    similarity,
		embedder:      embedder,
		vectorStore:   vectorStore,
		policy:        policy,
		shortlist:     shortlist,
		parallelism:   parallelism,
	}
}

// CompareResume implements MatcherService.
func (m *matcherService) CompareResume(ctx context.Context, actorEmail string, resumeID uuid.UUID, jobText string) (*models.CompareResponse, error) {
	candidate, err := m.candidateRepo.FindOwned(resumeID, actorEmail)
	if err != nil {
		return nil, err
	}

	jobSkills := m.extractor.ExtractSkills(jobText)
	matchScore, successRate, matched := m.scoreCandidate(ctx, jobText, jobSkills, candidate)

	m.recordComparison(actorEmail, jobText, jobSkills.Sorted(), matched, candidate.ID, matchScore, successRate)

	return &models.CompareResponse{
		Name:           candidate.Name,
		Email:          candidate.Email,
		ResumeID:       candidate.ID.String(),
		ResumeFilename: candidate.OriginalFileName,
		MatchScore:     matchScore,
		SuccessRate:    successRate,
		MatchedSkills:  matched,
		JobSkills:      jobSkills.Sorted(),
	}, nil
}

// MatchPool implements MatcherService. Per-candidate computations are
// independent, so they run on a bounded goroutine pool.
func (m *matcherService) MatchPool(ctx context.Context, actorEmail, jobText string) ([]string, []models.PoolMatchResult, error) {
	jobSkills := m.extractor.ExtractSkills(jobText)

	pool, err := m.poolCandidates(ctx, jobText)
	if err != nil {
		return nil, nil, err
	}

	results := make([]models.PoolMatchResult, len(pool))
	slots := make(chan struct{}, m.parallelism)
	var wg sync.WaitGroup

	for i := range pool {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()

			candidate := &pool[i]
			matchScore, successRate, matched := m.scoreCandidate(ctx, jobText, jobSkills, candidate)

			results[i] = models.PoolMatchResult{
				CandidateID:    candidate.ID.String(),
				Name:           candidate.Name,
				Email:          candidate.Email,
				ResumeFilename: candidate.OriginalFileName,
				MatchScore:     matchScore,
				SuccessRate:    successRate,
				MatchedSkills:  matched,
			}

			m.recordComparison(actorEmail, jobText, jobSkills.Sorted(), matched, candidate.ID, matchScore, successRate)
		}(i)
	}

	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SuccessRate != results[j].SuccessRate {
			return results[i].SuccessRate > results[j].SuccessRate
		}
		return results[i].MatchScore > results[j].MatchScore
	})

	return jobSkills.Sorted(), results, nil
}

// scoreCandidate produces the bounded scores for one job/resume pair.
func (m *matcherService) scoreCandidate(ctx context.Context, jobText string, jobSkills SkillSet, candidate *models.Candidate) (matchScore, successRate float64, matched []string) {
	candidateSkills := NewSkillSet(candidate.Skills...)
	matched = jobSkills.Intersect(candidateSkills).Sorted()

	if m.policy == PolicyCoverage {
		matchScore = round1(clamp(Jaccard(jobSkills, candidateSkills), 0.0, 100.0))
		successRate = m.coverageSuccess(matchScore, jobText, candidateSkills)
		return matchScore, successRate, matched
	}

	sem := m.similarity.SemanticSimilarity(ctx, jobText, candidate.ResumeText)
	cov := Coverage(jobSkills, candidateSkills)
	matchScore, successRate = BlendSemantic(sem, cov)
	return matchScore, successRate, matched
}

// coverageSuccess is the legacy path: weight the must-have section more
// heavily when one is detected, otherwise success is the jaccard score.
func (m *matcherService) coverageSuccess(jaccardScore float64, jobText string, candidateSkills SkillSet) float64 {
	if block, ok := ExtractRequiredBlock(jobText); ok {
		requiredSkills := m.extractor.ExtractSkills(block)
		if requiredSkills.Len() > 0 {
			return BlendCoverage(jaccardScore, Coverage(requiredSkills, candidateSkills), true)
		}
	}
	return BlendCoverage(jaccardScore, 0.0, false)
}

// recordComparison appends one history record. A failed write is a
// warning only: the scores have already been computed and stay valid.
func (m *matcherService) recordComparison(actorEmail, jobText string, jobSkills, matched []string, resumeID uuid.UUID, matchScore, successRate float64) {
	record := &models.ComparisonRecord{
		ID:            uuid.New(),
		ActorEmail:    actorEmail,
		JobExcerpt:    TruncateRunes(jobText, JobExcerptLimit),
		ResumeID:      resumeID,
		JobSkills:     jobSkills,
		MatchedSkills: matched,
		MatchScore:    matchScore,
		SuccessRate:   successRate,
		CreatedAt:     time.Now(),
	}

	if err := m.historyRepo.Create(record); err != nil {
		log.Printf("⚠️  Failed to record comparison history: %v\n", err)
	}
}

// poolCandidates picks the candidates to score. With a configured
// shortlist and a reachable vector index only the top-K semantically
// closest resumes are scored; every failure on that path falls back to
// the full pool.
func (m *matcherService) poolCandidates(ctx context.Context, jobText string) ([]models.Candidate, error) {
	if m.vectorStore == nil || m.embedder == nil || m.shortlist <= 0 {
		return m.candidateRepo.FindAll()
	}

	embedding, err := m.embedder.GenerateEmbedding(ctx, jobText)
	if err != nil {
		log.Printf("⚠️  Shortlist embedding failed, scanning full pool: %v\n", err)
		return m.candidateRepo.FindAll()
	}

	hits, err := m.vectorStore.TopResumes(ctx, embedding, m.shortlist)
	if err != nil || len(hits) == 0 {
		if err != nil {
			log.Printf("⚠️  Vector search failed, scanning full pool: %v\n", err)
		}
		return m.candidateRepo.FindAll()
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.CandidateID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	candidates, err := m.candidateRepo.FindByIDs(ids)
	if err != nil || len(candidates) == 0 {
		if err != nil {
			log.Printf("⚠️  Shortlist lookup failed, scanning full pool: %v\n", err)
		}
		return m.candidateRepo.FindAll()
	}

	return candidates, nil
}
