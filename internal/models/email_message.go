package models

import (
	"time"
)

// EmailMessage represents one email pulled from a mailbox account or delivered
// over the inbound SMTP listener. A message is identified by its provider
// message id within an account; re-ingesting the same id is a no-op.
type EmailMessage struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Account           string `gorm:"not null;size:255;uniqueIndex:idx_account_provider_id" json:"account"`
	ProviderMessageID string `gorm:"not null;size:512;uniqueIndex:idx_account_provider_id" json:"provider_message_id"`

	FromEmail string    `gorm:"not null;size:255" json:"from_email"`
	FromName  string    `gorm:"size:255" json:"from_name,omitempty"`
	ToEmail   string    `gorm:"size:512" json:"to_email,omitempty"`
	Cc        string    `gorm:"size:512" json:"cc,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	BodyText  string    `json:"body_text,omitempty"`
	BodyHTML  string    `json:"body_html,omitempty"`
	ReceivedAt time.Time `gorm:"not null;index" json:"received_at"`

	HasAttachments bool `gorm:"default:false" json:"has_attachments"`
	// AttachmentInfo holds a JSON array of attachment metadata
	// ({name, size, type}); attachment content is not persisted.
	AttachmentInfo string `gorm:"type:text" json:"attachment_info,omitempty"`

	// Classification is unset until the analyzer has processed the message.
	// An unset classification is the retry marker for failed analysis runs.
	Classification *string    `gorm:"size:64;index" json:"classification,omitempty"`
	Summary        string     `json:"summary,omitempty"`
	Urgency        string     `gorm:"size:16" json:"urgency,omitempty"`
	Sentiment      string     `gorm:"size:16" json:"sentiment,omitempty"`
	AnalyzedAt     *time.Time `json:"analyzed_at,omitempty"`

	IsRead     bool   `gorm:"default:false" json:"is_read"`
	IsArchived bool   `gorm:"default:false" json:"is_archived"`
	Notes      string `json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Actions []EmailAction `gorm:"foreignKey:EmailMessageID;constraint:OnDelete:CASCADE" json:"actions,omitempty"`
}

// TableName returns the table name for EmailMessage
func (EmailMessage) TableName() string {
	return "email_messages"
}

// IsAnalyzed reports whether the analyzer has classified this message.
func (m *EmailMessage) IsAnalyzed() bool {
	return m.Classification != nil && m.AnalyzedAt != nil
}

// InboxItem is a lightweight message view for inbox listings.
type InboxItem struct {
	ID             uint      `json:"id"`
	Account        string    `json:"account"`
	FromEmail      string    `json:"from_email"`
	FromName       string    `json:"from_name,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	ReceivedAt     time.Time `json:"received_at"`
	Classification *string   `json:"classification,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	Urgency        string    `json:"urgency,omitempty"`
	Sentiment      string    `json:"sentiment,omitempty"`
	IsRead         bool      `json:"is_read"`
	HasAttachments bool      `json:"has_attachments"`
	PendingActions int       `json:"pending_actions"`
}

// InboxStats aggregates counters shown above the inbox listing.
type InboxStats struct {
	Total           int64 `json:"total"`
	Unread          int64 `json:"unread"`
	PendingAnalysis int64 `json:"pending_analysis"`
	Urgent          int64 `json:"urgent"`
	Sponsoring      int64 `json:"sponsoring"`
	Booking         int64 `json:"booking"`
	Partnership     int64 `json:"partnership"`
	Media           int64 `json:"media"`
}
