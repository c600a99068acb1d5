package repository

import (
	"context"
	"fmt"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// NewsletterRepository defines the interface for newsletter subscriber data
// access
type NewsletterRepository interface {
	// Subscribe inserts the subscriber; a duplicate email is a no-op. Returns
	// true when the subscriber was newly created.
	Subscribe(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.NewsletterSubscriber, int64, error)
	Delete(ctx context.Context, id uint) error
}

// newsletterRepository implements NewsletterRepository using GORM
type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a new NewsletterRepository instance
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// Subscribe inserts a subscriber, skipping duplicates
func (r *newsletterRepository) Subscribe(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error) {
	result := r.db.WithContext(ctx).Create(subscriber)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create subscriber: %w", result.Error)
	}
	return true, nil
}

// List retrieves subscribers with pagination, newest first
func (r *newsletterRepository) List(ctx context.Context, limit, offset int) ([]models.NewsletterSubscriber, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	var subscribers []models.NewsletterSubscriber
	result := r.db.WithContext(ctx).Order("subscribed_at DESC").Limit(limit).Offset(offset).Find(&subscribers)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list subscribers: %w", result.Error)
	}
	return subscribers, total, nil
}

// Delete deletes a subscriber by its ID
func (r *newsletterRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.NewsletterSubscriber{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscriber: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
