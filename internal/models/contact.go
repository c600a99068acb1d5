package models

import (
	"time"
)

// Contact is a CRM person record. Contacts are keyed by email; applying a
// create_contact action for an existing email appends to the notes instead of
// inserting a second row.
type Contact struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:255" json:"first_name,omitempty"`
	LastName     string    `gorm:"size:255" json:"last_name,omitempty"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Phone        string    `gorm:"size:64" json:"phone,omitempty"`
	Organization string    `gorm:"size:255" json:"organization,omitempty"`
	Role         string    `gorm:"size:255" json:"role,omitempty"`
	Source       string    `gorm:"size:64" json:"source,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
