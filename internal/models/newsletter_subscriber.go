package models

import (
	"time"
)

// NewsletterSubscriber is a newsletter signup. Subscribing twice with the same
// email is treated as success.
type NewsletterSubscriber struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Confirmed      bool       `gorm:"default:false" json:"confirmed"`
	SubscribedAt   time.Time  `gorm:"autoCreateTime" json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

// TableName returns the table name for NewsletterSubscriber
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
