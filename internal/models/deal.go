package models

import (
	"time"
)

// Deal statuses.
const (
	DealStatusLead        = "lead"
	DealStatusNegotiation = "negotiation"
	DealStatusWon         = "won"
	DealStatusLost        = "lost"
)

// Deal is a CRM opportunity (sponsoring, partnership) optionally linked to a
// contact.
type Deal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `json:"description,omitempty"`
	AmountCHF   *float64  `json:"amount_chf,omitempty"`
	Status      string    `gorm:"not null;size:32;default:lead" json:"status"`
	ContactID   *uint     `gorm:"index" json:"contact_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"-"`
}

// TableName returns the table name for Deal
func (Deal) TableName() string {
	return "deals"
}
