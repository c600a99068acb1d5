package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// ContactRepository defines the interface for CRM contact data access
type ContactRepository interface {
	// UpsertByEmail inserts the contact or, when the email already exists,
	// appends the contact's notes to the existing row. Returns the stored row.
	UpsertByEmail(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	GetByID(ctx context.Context, id uint) (*models.Contact, error)
	GetByEmail(ctx context.Context, email string) (*models.Contact, error)
	List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error)
	Delete(ctx context.Context, id uint) error
}

// contactRepository implements ContactRepository using GORM
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// UpsertByEmail inserts or note-merges a contact keyed by email
func (r *contactRepository) UpsertByEmail(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	var stored *models.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Contact
		err := tx.Where("email = ?", contact.Email).First(&existing).Error
		if err == nil {
			notes := existing.Notes
			if notes != "" && contact.Notes != "" {
				notes += "\n---\n"
			}
			notes += contact.Notes
			if err := tx.Model(&existing).Update("notes", notes).Error; err != nil {
				return fmt.Errorf("failed to merge contact notes: %w", err)
			}
			existing.Notes = notes
			stored = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up contact: %w", err)
		}

		if err := tx.Create(contact).Error; err != nil {
			return fmt.Errorf("failed to create contact: %w", err)
		}
		stored = contact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetByID retrieves a contact by its ID
func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.Contact, error) {
	var contact models.Contact
	result := r.db.WithContext(ctx).First(&contact, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact by ID: %w", result.Error)
	}
	return &contact, nil
}

// GetByEmail retrieves a contact by its email address
func (r *contactRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	var contact models.Contact
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&contact)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact by email: %w", result.Error)
	}
	return &contact, nil
}

// List retrieves contacts with pagination, newest first
func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Contact{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var contacts []models.Contact
	result := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&contacts)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", result.Error)
	}
	return contacts, total, nil
}

// Delete deletes a contact by its ID
func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
