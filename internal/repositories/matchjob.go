package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emiliell/MatchWise/internal/models"
)

type MatchJobRepository interface {
	Create(job *models.MatchJob) error
	FindByID(id uuid.UUID) (*models.MatchJob, error)
	UpdateStatus(id uuid.UUID, status models.MatchJobStatus) error
	UpdateResult(id uuid.UUID, jobSkills []string, results []models.PoolMatchResult) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.MatchJob, error)
}

type matchJobRepository struct {
	db *gorm.DB
}

func NewMatchJobRepository(db *gorm.DB) MatchJobRepository {
	return &matchJobRepository{db: db}
}

func (r *matchJobRepository) Create(job *models.MatchJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create match job: %w", err)
	}
	return nil
}

func (r *matchJobRepository) FindByID(id uuid.UUID) (*models.MatchJob, error) {
	var job models.MatchJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("match job not found")
		}
		return nil, fmt.Errorf("failed to find match job: %w", err)
	}
	return &job, nil
}

func (r *matchJobRepository) UpdateStatus(id uuid.UUID, status models.MatchJobStatus) error {
	result := r.db.Model(&models.MatchJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("match job not found")
	}

	return nil
}

func (r *matchJobRepository) UpdateResult(id uuid.UUID, jobSkills []string, results []models.PoolMatchResult) error {
	// Struct-based update so the JSON serializer kicks in for the
	// skills and results columns.
	result := r.db.Model(&models.MatchJob{}).
		Where("id = ?", id).
		Updates(models.MatchJob{
			Status:    models.StatusCompleted,
			JobSkills: jobSkills,
			Results:   results,
			UpdatedAt: time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("match job not found")
	}

	return nil
}

func (r *matchJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.MatchJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("match job not found")
	}

	return nil
}

func (r *matchJobRepository) FindPendingJobs(limit int) ([]models.MatchJob, error) {
	var jobs []models.MatchJob
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return jobs, nil
}
