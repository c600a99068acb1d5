package models

import (
	"time"
)

// VIP registration statuses.
const (
	VIPStatusNew       = "new"
	VIPStatusConfirmed = "confirmed"
	VIPStatusDeclined  = "declined"
)

// VIPRegistration is a registration for free entry plus companion, for guests
// with a disability.
type VIPRegistration struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	Email         string    `gorm:"not null;size:255" json:"email"`
	Phone         string    `gorm:"size:64" json:"phone,omitempty"`
	HasCompanion  bool      `gorm:"default:false" json:"has_companion"`
	Accessibility string    `json:"accessibility,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `gorm:"not null;size:32;default:new;index" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for VIPRegistration
func (VIPRegistration) TableName() string {
	return "vip_registrations"
}
