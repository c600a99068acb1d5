package models

import (
	"time"
)

// EmailDigest records one sent digest email. The newest row doubles as the
// persisted "last digest sent" marker, so no-change detection survives
// process restarts.
type EmailDigest struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Recipients  string    `gorm:"not null;size:512" json:"recipients"`
	EmailCount  int       `json:"email_count"`
	ActionCount int       `json:"action_count"`
	// Payload holds the JSON summary the digest was rendered from
	// (classification counts, urgent count).
	Payload   string    `gorm:"type:text" json:"payload,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for EmailDigest
func (EmailDigest) TableName() string {
	return "email_digests"
}
