package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// DigestRepository defines the interface for digest records. The newest row is
// the "last digest sent" marker the sender computes its window from.
type DigestRepository interface {
	Create(ctx context.Context, digest *models.EmailDigest) error
	// GetLatest returns the most recent digest, or ErrNotFound when no digest
	// has ever been sent.
	GetLatest(ctx context.Context) (*models.EmailDigest, error)
}

// digestRepository implements DigestRepository using GORM
type digestRepository struct {
	db *gorm.DB
}

// NewDigestRepository creates a new DigestRepository instance
func NewDigestRepository(db *gorm.DB) DigestRepository {
	return &digestRepository{db: db}
}

// Create persists a sent digest
func (r *digestRepository) Create(ctx context.Context, digest *models.EmailDigest) error {
	result := r.db.WithContext(ctx).Create(digest)
	if result.Error != nil {
		return fmt.Errorf("failed to create digest: %w", result.Error)
	}
	return nil
}

// GetLatest returns the most recently created digest
func (r *digestRepository) GetLatest(ctx context.Context) (*models.EmailDigest, error) {
	var digest models.EmailDigest
	result := r.db.WithContext(ctx).Order("created_at DESC").First(&digest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest digest: %w", result.Error)
	}
	return &digest, nil
}
