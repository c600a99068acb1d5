package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// CompanyRepository defines the interface for CRM company data access
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	List(ctx context.Context, limit, offset int) ([]models.Company, int64, error)
	Delete(ctx context.Context, id uint) error
}

// companyRepository implements CompanyRepository using GORM
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository instance
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Create creates a new company
func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	result := r.db.WithContext(ctx).Create(company)
	if result.Error != nil {
		return fmt.Errorf("failed to create company: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a company by its ID
func (r *companyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	result := r.db.WithContext(ctx).First(&company, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company by ID: %w", result.Error)
	}
	return &company, nil
}

// List retrieves companies with pagination, newest first
func (r *companyRepository) List(ctx context.Context, limit, offset int) ([]models.Company, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	var companies []models.Company
	result := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&companies)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", result.Error)
	}
	return companies, total, nil
}

// Delete deletes a company by its ID
func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Company{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete company: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
