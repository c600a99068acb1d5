package models

import (
	"time"
)

// Company is a CRM organization record (sponsors, partners, locations).
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Website   string    `gorm:"size:512" json:"website,omitempty"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Company
func (Company) TableName() string {
	return "companies"
}
