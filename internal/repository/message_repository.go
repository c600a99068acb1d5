package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"gorm.io/gorm"
)

// Status filter values for InboxFilter.
const (
	StatusUnread      = "unread"
	StatusUnprocessed = "unprocessed"
	StatusAnalyzed    = "analyzed"
)

// InboxFilter narrows inbox listings. Zero values mean "no filter".
type InboxFilter struct {
	Account        string
	Classification string
	Urgency        string
	Status         string // StatusUnread, StatusUnprocessed, StatusAnalyzed or "" / "all"
	Search         string
	Limit          int
	Offset         int
}

// AnalysisUpdate carries the classification result persisted together with the
// proposed actions in one transaction.
type AnalysisUpdate struct {
	Classification string
	Summary        string
	Urgency        string
	Sentiment      string
	AnalyzedAt     time.Time
}

// MessageRepository defines the interface for email message data access
type MessageRepository interface {
	// CreateIfNew inserts the message unless one with the same
	// (account, provider message id) identity already exists. Returns true
	// when a new row was created, false when the identity was a duplicate.
	CreateIfNew(ctx context.Context, message *models.EmailMessage) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.EmailMessage, error)
	ListInbox(ctx context.Context, filter InboxFilter) ([]models.InboxItem, int64, error)
	InboxStats(ctx context.Context) (*models.InboxStats, error)
	// ListUnanalyzed returns up to limit messages with no classification yet,
	// oldest first.
	ListUnanalyzed(ctx context.Context, limit int) ([]models.EmailMessage, error)
	// MarkAnalyzed persists the classification and inserts the proposed
	// actions atomically; on error neither is applied.
	MarkAnalyzed(ctx context.Context, id uint, update AnalysisUpdate, actions []models.EmailAction) error
	MarkAsRead(ctx context.Context, id uint) error
	SetArchived(ctx context.Context, id uint, archived bool) error
	AppendNote(ctx context.Context, id uint, note string) error
	// Delete removes a message and its actions; it fails with
	// ErrHasPendingActions while any action is still suggested.
	Delete(ctx context.Context, id uint) error
	CountReceivedSince(ctx context.Context, since time.Time) (int64, error)
	ListReceivedSince(ctx context.Context, since time.Time) ([]models.EmailMessage, error)
	ClassificationCountsSince(ctx context.Context, since time.Time) (map[string]int64, error)
}

// messageRepository implements MessageRepository using GORM
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository instance
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// CreateIfNew inserts a message, treating an identity collision as a skip
func (r *messageRepository) CreateIfNew(ctx context.Context, message *models.EmailMessage) (bool, error) {
	result := r.db.WithContext(ctx).Create(message)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create message: %w", result.Error)
	}
	return true, nil
}

// GetByID retrieves a message by its ID with preloaded actions
func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.EmailMessage, error) {
	var message models.EmailMessage
	result := r.db.WithContext(ctx).Preload("Actions").First(&message, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message by ID: %w", result.Error)
	}
	return &message, nil
}

func (r *messageRepository) inboxQuery(ctx context.Context, filter InboxFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.EmailMessage{}).Where("is_archived = ?", false)

	if filter.Account != "" {
		q = q.Where("account = ?", filter.Account)
	}
	if filter.Classification != "" {
		q = q.Where("classification = ?", filter.Classification)
	}
	if filter.Urgency != "" {
		q = q.Where("urgency = ?", filter.Urgency)
	}
	switch filter.Status {
	case StatusUnread:
		q = q.Where("is_read = ?", false)
	case StatusUnprocessed:
		q = q.Where("classification IS NULL")
	case StatusAnalyzed:
		q = q.Where("classification IS NOT NULL")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("subject LIKE ? OR from_name LIKE ? OR from_email LIKE ?", pattern, pattern, pattern)
	}
	return q
}

// ListInbox retrieves messages matching the filter, newest first, with the
// count of still-suggested actions per message
func (r *messageRepository) ListInbox(ctx context.Context, filter InboxFilter) ([]models.InboxItem, int64, error) {
	var total int64
	if err := r.inboxQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inbox messages: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var items []models.InboxItem
	err := r.inboxQuery(ctx, filter).
		Select(`email_messages.id, email_messages.account, email_messages.from_email,
			email_messages.from_name, email_messages.subject, email_messages.received_at,
			email_messages.classification, email_messages.summary, email_messages.urgency,
			email_messages.sentiment, email_messages.is_read, email_messages.has_attachments,
			COALESCE((SELECT COUNT(*) FROM email_actions
				WHERE email_actions.email_message_id = email_messages.id
				AND email_actions.status = ?), 0) AS pending_actions`, models.ActionSuggested).
		Order("received_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Scan(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inbox messages: %w", err)
	}

	return items, total, nil
}

// InboxStats computes the counters shown above the inbox listing
func (r *messageRepository) InboxStats(ctx context.Context) (*models.InboxStats, error) {
	stats := &models.InboxStats{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.EmailMessage{}).Where("is_archived = ?", false)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to compute inbox stats: %w", err)
	}
	if err := base().Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return nil, fmt.Errorf("failed to compute inbox stats: %w", err)
	}
	if err := base().Where("classification IS NULL").Count(&stats.PendingAnalysis).Error; err != nil {
		return nil, fmt.Errorf("failed to compute inbox stats: %w", err)
	}
	if err := base().Where("urgency IN ?", []string{"high", "critical"}).Count(&stats.Urgent).Error; err != nil {
		return nil, fmt.Errorf("failed to compute inbox stats: %w", err)
	}

	byClass := map[string]*int64{
		"sponsoring":  &stats.Sponsoring,
		"booking":     &stats.Booking,
		"partnership": &stats.Partnership,
		"media":       &stats.Media,
	}
	for class, dst := range byClass {
		if err := base().Where("classification = ?", class).Count(dst).Error; err != nil {
			return nil, fmt.Errorf("failed to compute inbox stats: %w", err)
		}
	}

	return stats, nil
}

// ListUnanalyzed returns unclassified messages, oldest first so retries keep a
// stable order
func (r *messageRepository) ListUnanalyzed(ctx context.Context, limit int) ([]models.EmailMessage, error) {
	var messages []models.EmailMessage
	result := r.db.WithContext(ctx).
		Where("classification IS NULL").
		Order("received_at ASC, id ASC").
		Limit(limit).
		Find(&messages)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list unanalyzed messages: %w", result.Error)
	}
	return messages, nil
}

// MarkAnalyzed writes the classification and the suggested actions in one
// transaction
func (r *messageRepository) MarkAnalyzed(ctx context.Context, id uint, update AnalysisUpdate, actions []models.EmailAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.EmailMessage{}).Where("id = ?", id).Updates(map[string]interface{}{
			"classification": update.Classification,
			"summary":        update.Summary,
			"urgency":        update.Urgency,
			"sentiment":      update.Sentiment,
			"analyzed_at":    update.AnalyzedAt,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to mark message analyzed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		for i := range actions {
			actions[i].EmailMessageID = id
			actions[i].Status = models.ActionSuggested
			if err := tx.Create(&actions[i]).Error; err != nil {
				return fmt.Errorf("failed to create suggested action: %w", err)
			}
		}

		return nil
	})
}

// MarkAsRead marks a message as read
func (r *messageRepository) MarkAsRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.EmailMessage{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark message as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetArchived archives or unarchives a message
func (r *messageRepository) SetArchived(ctx context.Context, id uint, archived bool) error {
	result := r.db.WithContext(ctx).Model(&models.EmailMessage{}).Where("id = ?", id).Update("is_archived", archived)
	if result.Error != nil {
		return fmt.Errorf("failed to set archived: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendNote appends a note line to the message's notes
func (r *messageRepository) AppendNote(ctx context.Context, id uint, note string) error {
	var message models.EmailMessage
	if err := r.db.WithContext(ctx).Select("id", "notes").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load message notes: %w", err)
	}

	notes := message.Notes
	if notes != "" {
		notes += "\n"
	}
	notes += note

	if err := r.db.WithContext(ctx).Model(&models.EmailMessage{}).Where("id = ?", id).Update("notes", notes).Error; err != nil {
		return fmt.Errorf("failed to append note: %w", err)
	}
	return nil
}

// Delete removes a message and cascades its actions, unless suggested actions
// still reference it
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		err := tx.Model(&models.EmailAction{}).
			Where("email_message_id = ? AND status = ?", id, models.ActionSuggested).
			Count(&pending).Error
		if err != nil {
			return fmt.Errorf("failed to count pending actions: %w", err)
		}
		if pending > 0 {
			return ErrHasPendingActions
		}

		if err := tx.Where("email_message_id = ?", id).Delete(&models.EmailAction{}).Error; err != nil {
			return fmt.Errorf("failed to delete actions: %w", err)
		}

		result := tx.Delete(&models.EmailMessage{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete message: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountReceivedSince counts non-archived messages received at or after since
func (r *messageRepository) CountReceivedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.EmailMessage{}).
		Where("received_at >= ? AND is_archived = ?", since, false).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count received messages: %w", result.Error)
	}
	return count, nil
}

// ListReceivedSince returns non-archived messages received at or after since,
// most urgent first
func (r *messageRepository) ListReceivedSince(ctx context.Context, since time.Time) ([]models.EmailMessage, error) {
	var messages []models.EmailMessage
	result := r.db.WithContext(ctx).
		Where("received_at >= ? AND is_archived = ?", since, false).
		Order(`CASE urgency
			WHEN 'critical' THEN 0
			WHEN 'high' THEN 1
			WHEN 'medium' THEN 2
			ELSE 3 END, received_at DESC`).
		Find(&messages)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list received messages: %w", result.Error)
	}
	return messages, nil
}

// ClassificationCountsSince groups classified messages received since the
// given time by classification
func (r *messageRepository) ClassificationCountsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	type row struct {
		Classification string
		Count          int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.EmailMessage{}).
		Select("classification, COUNT(*) AS count").
		Where("received_at >= ? AND classification IS NOT NULL", since).
		Group("classification").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count classifications: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Classification] = r.Count
	}
	return counts, nil
}
