package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emiliell/MatchWise/internal/models"
)

// HistoryRepository persists comparison records. Records are
// append-only: there is deliberately no update operation.
type HistoryRepository interface {
	Create(record *models.ComparisonRecord) error
	FindByActor(actorEmail string) ([]models.ComparisonRecord, error)
	DeleteOwned(id uuid.UUID, actorEmail string) error
	DeleteAllByActor(actorEmail string) (int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(record *models.ComparisonRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create comparison record: %w", err)
	}
	return nil
}

func (r *historyRepository) FindByActor(actorEmail string) ([]models.ComparisonRecord, error) {
	var records []models.ComparisonRecord
	err := r.db.
		Where("actor_email = ?", actorEmail).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comparison records: %w", err)
	}

	return records, nil
}

func (r *historyRepository) DeleteOwned(id uuid.UUID, actorEmail string) error {
	result := r.db.
		Where("id = ? AND actor_email = ?", id, actorEmail).
		Delete(&models.ComparisonRecord{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete comparison record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("comparison record not found")
	}

	return nil
}

func (r *historyRepository) DeleteAllByActor(actorEmail string) (int64, error) {
	result := r.db.
		Where("actor_email = ?", actorEmail).
		Delete(&models.ComparisonRecord{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete comparison records: %w", result.Error)
	}

	return result.RowsAffected, nil
}
