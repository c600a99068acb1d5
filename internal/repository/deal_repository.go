package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// DealRepository defines the interface for CRM deal data access
type DealRepository interface {
	Create(ctx context.Context, deal *models.Deal) error
	GetByID(ctx context.Context, id uint) (*models.Deal, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.Deal, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// dealRepository implements DealRepository using GORM
type dealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new DealRepository instance
func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

// Create creates a new deal
func (r *dealRepository) Create(ctx context.Context, deal *models.Deal) error {
	if deal.Status == "" {
		deal.Status = models.DealStatusLead
	}
	result := r.db.WithContext(ctx).Create(deal)
	if result.Error != nil {
		return fmt.Errorf("failed to create deal: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a deal by its ID
func (r *dealRepository) GetByID(ctx context.Context, id uint) (*models.Deal, error) {
	var deal models.Deal
	result := r.db.WithContext(ctx).First(&deal, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal by ID: %w", result.Error)
	}
	return &deal, nil
}

// List retrieves deals with optional status filter and pagination, newest first
func (r *dealRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Deal, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Deal{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	var deals []models.Deal
	result := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&deals)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list deals: %w", result.Error)
	}
	return deals, total, nil
}

// UpdateStatus updates a deal's pipeline status
func (r *dealRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Deal{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update deal status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a deal by its ID
func (r *dealRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Deal{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete deal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
