package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// BookingRepository defines the interface for booking request data access
type BookingRepository interface {
	Create(ctx context.Context, booking *models.BookingRequest) error
	GetByID(ctx context.Context, id uint) (*models.BookingRequest, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.BookingRequest, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// bookingRepository implements BookingRepository using GORM
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new BookingRepository instance
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking request
func (r *bookingRepository) Create(ctx context.Context, booking *models.BookingRequest) error {
	if booking.Status == "" {
		booking.Status = models.BookingStatusNew
	}
	result := r.db.WithContext(ctx).Create(booking)
	if result.Error != nil {
		return fmt.Errorf("failed to create booking request: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a booking request by its ID
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.BookingRequest, error) {
	var booking models.BookingRequest
	result := r.db.WithContext(ctx).First(&booking, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking request by ID: %w", result.Error)
	}
	return &booking, nil
}

// List retrieves booking requests with optional status filter, newest first
func (r *bookingRepository) List(ctx context.Context, status string, limit, offset int) ([]models.BookingRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.BookingRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count booking requests: %w", err)
	}

	var bookings []models.BookingRequest
	result := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bookings)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list booking requests: %w", result.Error)
	}
	return bookings, total, nil
}

// UpdateStatus updates a booking request's status
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.BookingRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a booking request by its ID
func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.BookingRequest{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
