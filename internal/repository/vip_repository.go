package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// VIPRepository defines the interface for VIP registration data access
type VIPRepository interface {
	Create(ctx context.Context, registration *models.VIPRegistration) error
	GetByID(ctx context.Context, id uint) (*models.VIPRegistration, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.VIPRegistration, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// vipRepository implements VIPRepository using GORM
type vipRepository struct {
	db *gorm.DB
}

// NewVIPRepository creates a new VIPRepository instance
func NewVIPRepository(db *gorm.DB) VIPRepository {
	return &vipRepository{db: db}
}

// Create creates a new VIP registration
func (r *vipRepository) Create(ctx context.Context, registration *models.VIPRegistration) error {
	if registration.Status == "" {
		registration.Status = models.VIPStatusNew
	}
	result := r.db.WithContext(ctx).Create(registration)
	if result.Error != nil {
		return fmt.Errorf("failed to create VIP registration: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a VIP registration by its ID
func (r *vipRepository) GetByID(ctx context.Context, id uint) (*models.VIPRegistration, error) {
	var registration models.VIPRegistration
	result := r.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get VIP registration by ID: %w", result.Error)
	}
	return &registration, nil
}

// List retrieves VIP registrations with optional status filter, newest first
func (r *vipRepository) List(ctx context.Context, status string, limit, offset int) ([]models.VIPRegistration, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.VIPRegistration{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count VIP registrations: %w", err)
	}

	var registrations []models.VIPRegistration
	result := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&registrations)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list VIP registrations: %w", result.Error)
	}
	return registrations, total, nil
}

// UpdateStatus updates a VIP registration's status
func (r *vipRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.VIPRegistration{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update VIP status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a VIP registration by its ID
func (r *vipRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.VIPRegistration{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete VIP registration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
