package models

import (
	"time"
)

// ActionStatus is the review state of a suggested action.
type ActionStatus string

const (
	ActionSuggested ActionStatus = "suggested"
	ActionApplied   ActionStatus = "applied"
	ActionRejected  ActionStatus = "rejected"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s ActionStatus) IsTerminal() bool {
	return s == ActionApplied || s == ActionRejected
}

// Action kinds the applier knows how to execute.
const (
	ActionKindCreateContact       = "create_contact"
	ActionKindCreateCompany       = "create_company"
	ActionKindCreateDeal          = "create_deal"
	ActionKindCreateBooking       = "create_booking"
	ActionKindCreateVIP           = "create_vip"
	ActionKindAddNote             = "add_note"
	ActionKindUpdateBookingStatus = "update_booking_status"
)

// EmailAction is a CRM side effect proposed by the analyzer for one message.
// It waits in "suggested" until a human approves or rejects it; approval runs
// the applier, and only a successful apply moves it to "applied".
type EmailAction struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	EmailMessageID uint   `gorm:"not null;index" json:"email_message_id"`
	Kind           string `gorm:"not null;size:64" json:"kind"`

	// Payload is the kind-specific JSON blob produced by the analyzer and
	// consumed only by the applier, which validates its shape per kind.
	Payload string `gorm:"type:text" json:"payload,omitempty"`
	Reason  string `json:"reason,omitempty"`

	Status    ActionStatus `gorm:"not null;size:16;default:suggested;index" json:"status"`
	DecidedBy string       `gorm:"size:255" json:"decided_by,omitempty"`
	DecidedAt *time.Time   `json:"decided_at,omitempty"`

	// ResultType/ResultID reference the CRM record a successful apply created.
	ResultType string `gorm:"size:64" json:"result_type,omitempty"`
	ResultID   uint   `json:"result_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	EmailMessage EmailMessage `gorm:"foreignKey:EmailMessageID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for EmailAction
func (EmailAction) TableName() string {
	return "email_actions"
}

// ActionView is an EmailAction joined with minimal message context for review
// listings.
type ActionView struct {
	ID             uint         `json:"id"`
	EmailMessageID uint         `json:"email_message_id"`
	Kind           string       `json:"kind"`
	Payload        string       `json:"payload,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	Status         ActionStatus `json:"status"`
	DecidedBy      string       `json:"decided_by,omitempty"`
	DecidedAt      *time.Time   `json:"decided_at,omitempty"`
	ResultType     string       `json:"result_type,omitempty"`
	ResultID       uint         `json:"result_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`

	EmailSubject        string    `json:"email_subject"`
	EmailFrom           string    `json:"email_from"`
	EmailFromName       string    `json:"email_from_name,omitempty"`
	EmailClassification *string   `json:"email_classification,omitempty"`
	EmailReceivedAt     time.Time `json:"email_received_at"`
}
