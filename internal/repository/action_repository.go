package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// ActionFilter narrows action listings. Zero values mean "no filter".
type ActionFilter struct {
	Status         models.ActionStatus
	EmailMessageID uint
	Limit          int
}

// ActionRepository defines the interface for suggested action data access.
// Status transitions are one-directional: MarkApplied and MarkRejected only
// succeed while the action is still suggested, which gives the applier its
// at-most-once guarantee.
type ActionRepository interface {
	Create(ctx context.Context, action *models.EmailAction) error
	GetByID(ctx context.Context, id uint) (*models.EmailAction, error)
	ListViews(ctx context.Context, filter ActionFilter) ([]models.ActionView, error)
	MarkApplied(ctx context.Context, id uint, actor, resultType string, resultID uint) error
	MarkRejected(ctx context.Context, id uint, actor string) error
	CountSuggested(ctx context.Context) (int64, error)
	CountSuggestedForMessage(ctx context.Context, emailMessageID uint) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByStatusSince(ctx context.Context, status models.ActionStatus, since time.Time) (int64, error)
}

// actionRepository implements ActionRepository using GORM
type actionRepository struct {
	db *gorm.DB
}

// NewActionRepository creates a new ActionRepository instance
func NewActionRepository(db *gorm.DB) ActionRepository {
	return &actionRepository{db: db}
}

// Create creates a new suggested action
func (r *actionRepository) Create(ctx context.Context, action *models.EmailAction) error {
	if action.Status == "" {
		action.Status = models.ActionSuggested
	}
	result := r.db.WithContext(ctx).Create(action)
	if result.Error != nil {
		return fmt.Errorf("failed to create action: %w", result.Error)
	}
	return nil
}

// GetByID retrieves an action by its ID
func (r *actionRepository) GetByID(ctx context.Context, id uint) (*models.EmailAction, error) {
	var action models.EmailAction
	result := r.db.WithContext(ctx).First(&action, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get action by ID: %w", result.Error)
	}
	return &action, nil
}

// ListViews retrieves actions joined with message context, newest first
func (r *actionRepository) ListViews(ctx context.Context, filter ActionFilter) ([]models.ActionView, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	q := r.db.WithContext(ctx).Model(&models.EmailAction{}).
		Select(`email_actions.id, email_actions.email_message_id, email_actions.kind,
			email_actions.payload, email_actions.reason, email_actions.status,
			email_actions.decided_by, email_actions.decided_at,
			email_actions.result_type, email_actions.result_id, email_actions.created_at,
			email_messages.subject AS email_subject,
			email_messages.from_email AS email_from,
			email_messages.from_name AS email_from_name,
			email_messages.classification AS email_classification,
			email_messages.received_at AS email_received_at`).
		Joins("JOIN email_messages ON email_messages.id = email_actions.email_message_id")

	if filter.Status != "" {
		q = q.Where("email_actions.status = ?", filter.Status)
	}
	if filter.EmailMessageID != 0 {
		q = q.Where("email_actions.email_message_id = ?", filter.EmailMessageID)
	}

	var views []models.ActionView
	err := q.Order("email_actions.created_at DESC, email_actions.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	return views, nil
}

// transition flips a suggested action into a terminal state. The status guard
// in the WHERE clause makes concurrent double-decides lose cleanly.
func (r *actionRepository) transition(ctx context.Context, id uint, to models.ActionStatus, updates map[string]interface{}) error {
	updates["status"] = to
	result := r.db.WithContext(ctx).Model(&models.EmailAction{}).
		Where("id = ? AND status = ?", id, models.ActionSuggested).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update action status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing action from one already decided.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.EmailAction{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check action existence: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotActionable
	}
	return nil
}

// MarkApplied records a successful apply with its result reference
func (r *actionRepository) MarkApplied(ctx context.Context, id uint, actor, resultType string, resultID uint) error {
	return r.transition(ctx, id, models.ActionApplied, map[string]interface{}{
		"decided_by":  actor,
		"decided_at":  time.Now().UTC(),
		"result_type": resultType,
		"result_id":   resultID,
	})
}

// MarkRejected records a rejection without executing any side effect
func (r *actionRepository) MarkRejected(ctx context.Context, id uint, actor string) error {
	return r.transition(ctx, id, models.ActionRejected, map[string]interface{}{
		"decided_by": actor,
		"decided_at": time.Now().UTC(),
	})
}

// CountSuggested counts actions still awaiting review
func (r *actionRepository) CountSuggested(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.EmailAction{}).
		Where("status = ?", models.ActionSuggested).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count suggested actions: %w", result.Error)
	}
	return count, nil
}

// CountSuggestedForMessage counts pending actions for one message
func (r *actionRepository) CountSuggestedForMessage(ctx context.Context, emailMessageID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.EmailAction{}).
		Where("email_message_id = ? AND status = ?", emailMessageID, models.ActionSuggested).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count suggested actions for message: %w", result.Error)
	}
	return count, nil
}

// CountCreatedSince counts actions created at or after since
func (r *actionRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.EmailAction{}).
		Where("created_at >= ?", since).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count actions created since: %w", result.Error)
	}
	return count, nil
}

// CountByStatusSince counts actions in a status created at or after since
func (r *actionRepository) CountByStatusSince(ctx context.Context, status models.ActionStatus, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.EmailAction{}).
		Where("status = ? AND created_at >= ?", status, since).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count actions by status: %w", result.Error)
	}
	return count, nil
}
