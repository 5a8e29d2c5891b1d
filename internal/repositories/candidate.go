package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emiliell/MatchWise/internal/models"
)

var ErrCandidateNotFound = fmt.Errorf("candidate not found")

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	// FindOwned resolves a candidate only when it belongs to the given
	// actor. An unknown id and a foreign id both come back as
	// ErrCandidateNotFound so callers cannot tell the cases apart.
	FindOwned(id uuid.UUID, actorEmail string) (*models.Candidate, error)
	FindByEmail(email string) ([]models.Candidate, error)
	FindAll() ([]models.Candidate, error)
	FindByIDs(ids []uuid.UUID) ([]models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(&candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCandidateNotFound
		}

		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}

	return &candidate, nil
}

// FindOwned implements CandidateRepository.
func (r *candidateRepository) FindOwned(id uuid.UUID, actorEmail string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.Where("id = ? AND email = ?", id, actorEmail).First(&candidate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCandidateNotFound
		}

		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}

	return &candidate, nil
}

// FindByEmail implements CandidateRepository.
func (r *candidateRepository) FindByEmail(email string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.Where("email = ?", email).Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, nil
}

// FindAll implements CandidateRepository.
func (r *candidateRepository) FindAll() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, nil
}

// FindByIDs implements CandidateRepository.
func (r *candidateRepository) FindByIDs(ids []uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	return candidates, nil
}
