package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hr-screening/internal/models"
)

var ErrNotFound = errors.New("record not found")

type ScreeningRepository interface {
	Create(screening *models.Screening) error
	FindByID(id uuid.UUID) (*models.Screening, error)
	List(limit int) ([]models.Screening, error)
	FindPendingIndex(limit int) ([]models.Screening, error)
	UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr *string) error
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

func (r *screeningRepository) Create(screening *models.Screening) error {
	if err := r.db.Create(screening).Error; err != nil {
		return fmt.Errorf("failed to create screening: %w", err)
	}
	return nil
}

func (r *screeningRepository) FindByID(id uuid.UUID) (*models.Screening, error) {
	var screening models.Screening
	if err := r.db.Where("id = ?", id).First(&screening).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("screening %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find screening: %w", err)
	}
	return &screening, nil
}

func (r *screeningRepository) List(limit int) ([]models.Screening, error) {
	var screenings []models.Screening
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&screenings).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list screenings: %w", err)
	}
	return screenings, nil
}

func (r *screeningRepository) FindPendingIndex(limit int) ([]models.Screening, error) {
	var screenings []models.Screening
	err := r.db.
		Where("index_status = ?", models.IndexQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&screenings).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending screenings: %w", err)
	}
	return screenings, nil
}

func (r *screeningRepository) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr *string) error {
	result := r.db.Model(&models.Screening{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"index_status": status,
			"index_error":  indexErr,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update index status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("screening %s: %w", id, ErrNotFound)
	}

	return nil
}
