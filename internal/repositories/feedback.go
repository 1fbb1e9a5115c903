package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hr-screening/internal/models"
)

type FeedbackRepository interface {
	Create(analysis *models.FeedbackAnalysis) error
	FindByID(id uuid.UUID) (*models.FeedbackAnalysis, error)
	List(limit int) ([]models.FeedbackAnalysis, error)
	FindPendingIndex(limit int) ([]models.FeedbackAnalysis, error)
	UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr *string) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(analysis *models.FeedbackAnalysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create feedback analysis: %w", err)
	}
	return nil
}

func (r *feedbackRepository) FindByID(id uuid.UUID) (*models.FeedbackAnalysis, error) {
	var analysis models.FeedbackAnalysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedback analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find feedback analysis: %w", err)
	}
	return &analysis, nil
}

func (r *feedbackRepository) List(limit int) ([]models.FeedbackAnalysis, error) {
	var analyses []models.FeedbackAnalysis
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list feedback analyses: %w", err)
	}
	return analyses, nil
}

func (r *feedbackRepository) FindPendingIndex(limit int) ([]models.FeedbackAnalysis, error) {
	var analyses []models.FeedbackAnalysis
	err := r.db.
		Where("index_status = ?", models.IndexQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending feedback analyses: %w", err)
	}
	return analyses, nil
}

func (r *feedbackRepository) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr *string) error {
	result := r.db.Model(&models.FeedbackAnalysis{}).
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
		return fmt.Errorf("feedback analysis %s: %w", id, ErrNotFound)
	}

	return nil
}
