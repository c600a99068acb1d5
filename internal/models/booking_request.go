package models

import (
	"time"
)

// Booking request statuses.
const (
	BookingStatusNew       = "new"
	BookingStatusConfirmed = "confirmed"
	BookingStatusDeclined  = "declined"
)

// BookingRequest is an inquiry for a DJ booking, location or technical setup,
// submitted through the public booking form or created from an email action.
type BookingRequest struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null;size:255" json:"name"`
	Email     string     `gorm:"not null;size:255" json:"email"`
	Phone     string     `gorm:"size:64" json:"phone,omitempty"`
	EventDate *time.Time `json:"event_date,omitempty"`
	Message   string     `json:"message,omitempty"`
	Status    string     `gorm:"not null;size:32;default:new;index" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for BookingRequest
func (BookingRequest) TableName() string {
	return "booking_requests"
}
