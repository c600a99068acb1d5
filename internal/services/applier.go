package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/inclusions-zone/mailhub-backend/internal/errors"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
)

// ApplyResult references the CRM record an applied action produced.
type ApplyResult struct {
	ResultType string `json:"result_type"`
	ResultID   uint   `json:"result_id"`
}

// Applier executes a suggested action's CRM side effect. It never mutates the
// action's status; that is the caller's job after a successful apply.
type Applier interface {
	Apply(ctx context.Context, action *models.EmailAction, message *models.EmailMessage) (*ApplyResult, error)
}

// applier implements Applier
type applier struct {
	contacts  repository.ContactRepository
	companies repository.CompanyRepository
	deals     repository.DealRepository
	bookings  repository.BookingRepository
	vips      repository.VIPRepository
	messages  repository.MessageRepository
}

// NewApplier creates a new Applier instance
func NewApplier(
	contacts repository.ContactRepository,
	companies repository.CompanyRepository,
	deals repository.DealRepository,
	bookings repository.BookingRepository,
	vips repository.VIPRepository,
	messages repository.MessageRepository,
) Applier {
	return &applier{
		contacts:  contacts,
		companies: companies,
		deals:     deals,
		bookings:  bookings,
		vips:      vips,
		messages:  messages,
	}
}

func (a *applier) Apply(ctx context.Context, action *models.EmailAction, message *models.EmailMessage) (*ApplyResult, error) {
	switch action.Kind {
	case models.ActionKindCreateContact:
		return a.createContact(ctx, action, message)
	case models.ActionKindCreateCompany:
		return a.createCompany(ctx, action)
	case models.ActionKindCreateDeal:
		return a.createDeal(ctx, action, message)
	case models.ActionKindCreateBooking:
		return a.createBooking(ctx, action, message)
	case models.ActionKindCreateVIP:
		return a.createVIP(ctx, action, message)
	case models.ActionKindAddNote:
		return a.addNote(ctx, action)
	case models.ActionKindUpdateBookingStatus:
		return a.updateBookingStatus(ctx, action)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedActionKind, action.Kind)
	}
}

func decodePayload(action *models.EmailAction, v interface{}) error {
	payload := action.Payload
	if payload == "" {
		payload = "{}"
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err)
	}
	return nil
}

func hubNote(reason string) string {
	if reason == "" {
		return "[E-Mail-Hub]"
	}
	return "[E-Mail-Hub] " + reason
}

type contactPayload struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
}

func (a *applier) createContact(ctx context.Context, action *models.EmailAction, message *models.EmailMessage) (*ApplyResult, error) {
	var payload contactPayload
	if err := decodePayload(action, &payload); err != nil {
		return nil, err
	}
	// The sender address is a safe fallback identity for the new contact.
	if payload.Email == "" {
		payload.Email = message.FromEmail
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("%w: create_contact requires an email", apperrors.ErrInvalidPayload)
	}

	contact, err := a.contacts.UpsertByEmail(ctx, &models.Contact{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Organization: payload.Organization,
		Role:         payload.Role,
		Source:       "email",
		Notes:        hubNote(action.Reason) + "\nQuelle: " + message.Subject,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contact: %w", err)
	}
	return &ApplyResult{ResultType: "contacts", ResultID: contact.ID}, nil
}

type companyPayload struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Email   string `json:"email"`
	Notes   string `json:"notes"`
}

func (a *applier) createCompany(ctx context.Context, action *models.EmailAction) (*ApplyResult, error) {
	var payload companyPayload
	if err := decodePayload(action, &payload); err != nil {
		return nil, err
	}
	if payload.Name == "" {
		return nil, fmt.Errorf("%w: create_company requires a name", apperrors.ErrInvalidPayload)
	}

	notes := payload.Notes
	if notes == "" {
		notes = action.Reason
	}
	company := &models.Company{
		Name:    payload.Name,
		Website: payload.Website,
		Email:   payload.Email,
		Notes:   hubNote(notes),
	}
	if err := a.companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &ApplyResult{ResultType: "companies", ResultID: company.ID}, nil
}

type dealPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	AmountCHF    *float64 `json:"amount_chf"`
	Status       string   `json:"status"`
	ContactEmail string   `json:"contact_email"`
}

func (a *applier) createDeal(ctx context.Context, action *models.EmailAction, message *models.EmailMessage) (*ApplyResult, error) {
	var payload dealPayload
	if err := decodePayload(action, &payload); err != nil {
		return nil, err
	}
	if payload.Title == "" {
		return nil, fmt.Errorf("%w: create_deal requires a title", apperrors.ErrInvalidPayload)
	}
	if payload.Status == "" {
		payload.Status = models.DealStatusLead
	}

	contactEmail := payload.ContactEmail
	if contactEmail == "" {
		contactEmail = message.FromEmail
	}
	var contactID *uint
	if contactEmail != "" {
		contact, err := a.contacts.GetByEmail(ctx, contactEmail)
		if err == nil {
			contactID = &contact.ID
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up contact: %w", err)
		}
	}

	deal := &models.Deal{
		Title:       payload.Title,
		Description: payload.Description,
		AmountCHF:   payload.AmountCHF,
		Status:      payload.Status,
		ContactID:   contactID,
		Notes:       hubNote(action.Reason),
	}
	if err := a.deals.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}
	return &ApplyResult{ResultType: "deals", ResultID: deal.ID}, nil
}

type bookingPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EventDate string `json:"event_date"`
	Message   string `json:"message"`
}

func (a *applier) createBooking(ctx context.Context, action *models.EmailAction, message *models.EmailMessage) (*ApplyResult, error) {
	var payload bookingPayload
	if err := decodePayload(action, &payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		payload.Email = message.FromEmail
	}
	if payload.Name == "" {
		payload.Name = message.FromName
	}
	if payload.Name == "" || payload.Email == "" {
		return nil, fmt.Errorf("%w: create_booking requires name and email", apperrors.ErrInvalidPayload)
	}

	booking := &models.BookingRequest{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Message: payload.Message,
		Status:  models.BookingStatusNew,
	}
	if payload.EventDate != "" {
		if date, err := time.Parse("2006-01-02", payload.EventDate); err == nil {
			booking.EventDate = &date
		}
	}
	if err := a.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking request: %w", err)
	}
	return &ApplyResult{ResultType: "booking_requests", ResultID: booking.ID}, nil
}

type vipPayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	HasCompanion  bool   `json:"has_companion"`
	Accessibility string `json:"accessibility"`
}

func (a *applier) createVIP(ctx context.Context, action *models.EmailAction, message *models.EmailMessage) (*ApplyResult, error) {
	var payload vipPayload
	if err := decodePayload(action, &payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		payload.Email = message.FromEmail
	}
	if payload.Name == "" {
		payload.Name = message.FromName
	}
	if payload.Name == "" || payload.Email == "" {
		return nil, fmt.Errorf("%w: create_vip requires name and email", apperrors.ErrInvalidPayload)
	}

	registration := &models.VIPRegistration{
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		HasCompanion:  payload.HasCompanion,
		Accessibility: payload.Accessibility,
		Notes:         hubNote(action.Reason),
		Status:        models.VIPStatusNew,
	}
	if err := a.vips.Create(ctx, registration); err != nil {
		return nil, fmt.Errorf("failed to create vip registration: %w", err)
	}
	return &ApplyResult{ResultType: "vip_registrations", ResultID: registration.ID}, nil
}

type notePayload struct {
	Note string `json:"note"`
}

func (a *applier) addNote(ctx context.Context, action *models.EmailAction) (*ApplyResult, error) {
	var payload notePayload
	if err := decodePayload(action, &payload); err != nil {
		return nil, err
	}
	note := payload.Note
	if note == "" {
		note = action.Reason
	}
	if note == "" {
		return nil, fmt.Errorf("%w: add_note requires a note", apperrors.ErrInvalidPayload)
	}

	if err := a.messages.AppendNote(ctx, action.EmailMessageID, note); err != nil {
		return nil, fmt.Errorf("failed to append note: %w", err)
	}
	return &ApplyResult{ResultType: "email_messages", ResultID: action.EmailMessageID}, nil
}

type bookingStatusPayload struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"`
}

func (a *applier) updateBookingStatus(ctx context.Context, action *models.EmailAction) (*ApplyResult, error) {
	var payload bookingStatusPayload
	if err := decodePayload(action, &payload); err != nil {
		return nil, err
	}
	if payload.BookingID == 0 {
		return nil, fmt.Errorf("%w: update_booking_status requires a booking_id", apperrors.ErrInvalidPayload)
	}
	if payload.Status != models.BookingStatusConfirmed && payload.Status != models.BookingStatusDeclined {
		return nil, fmt.Errorf("%w: invalid booking status %q", apperrors.ErrInvalidPayload, payload.Status)
	}

	if err := a.bookings.UpdateStatus(ctx, payload.BookingID, payload.Status); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &ApplyResult{ResultType: "booking_requests", ResultID: payload.BookingID}, nil
}
