package fixtures

import (
	"fmt"
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
)

// EmailMessageBuilder creates test EmailMessage instances with fluent API
type EmailMessageBuilder struct {
	message models.EmailMessage
}

// NewEmailMessageBuilder creates a new EmailMessageBuilder with sensible defaults
func NewEmailMessageBuilder() *EmailMessageBuilder {
	now := time.Now()
	return &EmailMessageBuilder{
		message: models.EmailMessage{
			ID:                1,
			Account:           "info@inclusions.zone",
			ProviderMessageID: "msg-1@example.com",
			FromEmail:         "sender@example.com",
			FromName:          "Test Sender",
			ToEmail:           "info@inclusions.zone",
			Subject:           "Test Subject",
			BodyText:          "Test body",
			ReceivedAt:        now,
			CreatedAt:         now,
		},
	}
}

// WithID sets the message ID
func (b *EmailMessageBuilder) WithID(id uint) *EmailMessageBuilder {
	b.message.ID = id
	return b
}

// WithAccount sets the hub account
func (b *EmailMessageBuilder) WithAccount(account string) *EmailMessageBuilder {
	b.message.Account = account
	return b
}

// WithProviderMessageID sets the provider message id
func (b *EmailMessageBuilder) WithProviderMessageID(id string) *EmailMessageBuilder {
	b.message.ProviderMessageID = id
	return b
}

// WithFrom sets the sender name and address
func (b *EmailMessageBuilder) WithFrom(name, email string) *EmailMessageBuilder {
	b.message.FromName = name
	b.message.FromEmail = email
	return b
}

// WithSubject sets the subject
func (b *EmailMessageBuilder) WithSubject(subject string) *EmailMessageBuilder {
	b.message.Subject = subject
	return b
}

// WithBodyText sets the plain text body
func (b *EmailMessageBuilder) WithBodyText(body string) *EmailMessageBuilder {
	b.message.BodyText = body
	return b
}

// WithReceivedAt sets the received timestamp
func (b *EmailMessageBuilder) WithReceivedAt(t time.Time) *EmailMessageBuilder {
	b.message.ReceivedAt = t
	return b
}

// WithClassification marks the message analyzed with the given label
func (b *EmailMessageBuilder) WithClassification(label, urgency, sentiment, summary string) *EmailMessageBuilder {
	now := time.Now()
	b.message.Classification = &label
	b.message.Urgency = urgency
	b.message.Sentiment = sentiment
	b.message.Summary = summary
	b.message.AnalyzedAt = &now
	return b
}

// WithRead sets the read flag
func (b *EmailMessageBuilder) WithRead(read bool) *EmailMessageBuilder {
	b.message.IsRead = read
	return b
}

// WithArchived sets the archived flag
func (b *EmailMessageBuilder) WithArchived(archived bool) *EmailMessageBuilder {
	b.message.IsArchived = archived
	return b
}

// Build returns the constructed EmailMessage
func (b *EmailMessageBuilder) Build() *models.EmailMessage {
	return &b.message
}

// BuildValue returns the constructed EmailMessage as a value (not pointer)
func (b *EmailMessageBuilder) BuildValue() models.EmailMessage {
	return b.message
}

// EmailActionBuilder creates test EmailAction instances with fluent API
type EmailActionBuilder struct {
	action models.EmailAction
}

// NewEmailActionBuilder creates a new EmailActionBuilder with sensible defaults
func NewEmailActionBuilder() *EmailActionBuilder {
	return &EmailActionBuilder{
		action: models.EmailAction{
			ID:             1,
			EmailMessageID: 1,
			Kind:           models.ActionKindCreateContact,
			Payload:        `{"email":"sender@example.com","first_name":"Test"}`,
			Reason:         "Sender is not in the CRM yet",
			Status:         models.ActionSuggested,
			CreatedAt:      time.Now(),
		},
	}
}

// WithID sets the action ID
func (b *EmailActionBuilder) WithID(id uint) *EmailActionBuilder {
	b.action.ID = id
	return b
}

// WithMessageID sets the message the action belongs to
func (b *EmailActionBuilder) WithMessageID(id uint) *EmailActionBuilder {
	b.action.EmailMessageID = id
	return b
}

// WithKind sets the action kind
func (b *EmailActionBuilder) WithKind(kind string) *EmailActionBuilder {
	b.action.Kind = kind
	return b
}

// WithPayload sets the kind-specific payload
func (b *EmailActionBuilder) WithPayload(payload string) *EmailActionBuilder {
	b.action.Payload = payload
	return b
}

// WithStatus sets the action status
func (b *EmailActionBuilder) WithStatus(status models.ActionStatus) *EmailActionBuilder {
	b.action.Status = status
	return b
}

// WithDecision sets the decision metadata
func (b *EmailActionBuilder) WithDecision(by string, at time.Time) *EmailActionBuilder {
	b.action.DecidedBy = by
	b.action.DecidedAt = &at
	return b
}

// Build returns the constructed EmailAction
func (b *EmailActionBuilder) Build() *models.EmailAction {
	return &b.action
}

// BuildValue returns the constructed EmailAction as a value (not pointer)
func (b *EmailActionBuilder) BuildValue() models.EmailAction {
	return b.action
}

// ContactBuilder creates test Contact instances with fluent API
type ContactBuilder struct {
	contact models.Contact
}

// NewContactBuilder creates a new ContactBuilder with sensible defaults
func NewContactBuilder() *ContactBuilder {
	now := time.Now()
	return &ContactBuilder{
		contact: models.Contact{
			ID:        1,
			FirstName: "Lena",
			LastName:  "Hartmann",
			Email:     "lena@example.com",
			Source:    "email",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the contact ID
func (b *ContactBuilder) WithID(id uint) *ContactBuilder {
	b.contact.ID = id
	return b
}

// WithName sets first and last name
func (b *ContactBuilder) WithName(first, last string) *ContactBuilder {
	b.contact.FirstName = first
	b.contact.LastName = last
	return b
}

// WithEmail sets the contact email
func (b *ContactBuilder) WithEmail(email string) *ContactBuilder {
	b.contact.Email = email
	return b
}

// WithOrganization sets the organization
func (b *ContactBuilder) WithOrganization(org string) *ContactBuilder {
	b.contact.Organization = org
	return b
}

// Build returns the constructed Contact
func (b *ContactBuilder) Build() *models.Contact {
	return &b.contact
}

// DealBuilder creates test Deal instances with fluent API
type DealBuilder struct {
	deal models.Deal
}

// NewDealBuilder creates a new DealBuilder with sensible defaults
func NewDealBuilder() *DealBuilder {
	now := time.Now()
	return &DealBuilder{
		deal: models.Deal{
			ID:        1,
			Title:     "Sponsoring Festival 2026",
			Status:    models.DealStatusLead,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the deal ID
func (b *DealBuilder) WithID(id uint) *DealBuilder {
	b.deal.ID = id
	return b
}

// WithTitle sets the deal title
func (b *DealBuilder) WithTitle(title string) *DealBuilder {
	b.deal.Title = title
	return b
}

// WithStatus sets the deal status
func (b *DealBuilder) WithStatus(status string) *DealBuilder {
	b.deal.Status = status
	return b
}

// WithAmountCHF sets the deal amount
func (b *DealBuilder) WithAmountCHF(amount float64) *DealBuilder {
	b.deal.AmountCHF = &amount
	return b
}

// WithContactID links the deal to a contact
func (b *DealBuilder) WithContactID(id uint) *DealBuilder {
	b.deal.ContactID = &id
	return b
}

// Build returns the constructed Deal
func (b *DealBuilder) Build() *models.Deal {
	return &b.deal
}

// BookingBuilder creates test BookingRequest instances with fluent API
type BookingBuilder struct {
	booking models.BookingRequest
}

// NewBookingBuilder creates a new BookingBuilder with sensible defaults
func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		booking: models.BookingRequest{
			ID:        1,
			Name:      "DJ Aurora",
			Email:     "aurora@example.com",
			Message:   "Booking inquiry for a club night",
			Status:    models.BookingStatusNew,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the booking ID
func (b *BookingBuilder) WithID(id uint) *BookingBuilder {
	b.booking.ID = id
	return b
}

// WithName sets the requester name
func (b *BookingBuilder) WithName(name string) *BookingBuilder {
	b.booking.Name = name
	return b
}

// WithEmail sets the requester email
func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.booking.Email = email
	return b
}

// WithEventDate sets the requested event date
func (b *BookingBuilder) WithEventDate(t time.Time) *BookingBuilder {
	b.booking.EventDate = &t
	return b
}

// WithStatus sets the booking status
func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.booking.Status = status
	return b
}

// Build returns the constructed BookingRequest
func (b *BookingBuilder) Build() *models.BookingRequest {
	return &b.booking
}

// VIPBuilder creates test VIPRegistration instances with fluent API
type VIPBuilder struct {
	vip models.VIPRegistration
}

// NewVIPBuilder creates a new VIPBuilder with sensible defaults
func NewVIPBuilder() *VIPBuilder {
	now := time.Now()
	return &VIPBuilder{
		vip: models.VIPRegistration{
			ID:        1,
			Name:      "Jonas Weber",
			Email:     "jonas@example.com",
			Status:    models.VIPStatusNew,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the registration ID
func (b *VIPBuilder) WithID(id uint) *VIPBuilder {
	b.vip.ID = id
	return b
}

// WithName sets the guest name
func (b *VIPBuilder) WithName(name string) *VIPBuilder {
	b.vip.Name = name
	return b
}

// WithEmail sets the guest email
func (b *VIPBuilder) WithEmail(email string) *VIPBuilder {
	b.vip.Email = email
	return b
}

// WithCompanion sets the companion flag
func (b *VIPBuilder) WithCompanion(companion bool) *VIPBuilder {
	b.vip.HasCompanion = companion
	return b
}

// WithAccessibility sets the accessibility needs
func (b *VIPBuilder) WithAccessibility(needs string) *VIPBuilder {
	b.vip.Accessibility = needs
	return b
}

// WithStatus sets the registration status
func (b *VIPBuilder) WithStatus(status string) *VIPBuilder {
	b.vip.Status = status
	return b
}

// Build returns the constructed VIPRegistration
func (b *VIPBuilder) Build() *models.VIPRegistration {
	return &b.vip
}

// RawEmail returns an RFC 5322 message suitable for SMTP delivery tests.
func RawEmail(from, to, subject, messageID, body string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMessage-Id: <%s>\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from, to, subject, messageID, body)
}
