package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inclusions-zone/mailhub-backend/internal/mail"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/validator"
)

// IntakeService handles submissions from the public website forms
type IntakeService interface {
	// SubscribeNewsletter subscribes an email address; subscribing twice is
	// treated as success.
	SubscribeNewsletter(ctx context.Context, email string) (bool, error)
	RegisterVIP(ctx context.Context, registration *models.VIPRegistration) error
	RequestBooking(ctx context.Context, request *models.BookingRequest) error
	// ContactRequest stores the sender as a CRM contact with the message in
	// the notes.
	ContactRequest(ctx context.Context, name, email, message string) (*models.Contact, error)
}

// intakeService implements IntakeService
type intakeService struct {
	newsletter repository.NewsletterRepository
	vips       repository.VIPRepository
	bookings   repository.BookingRepository
	contacts   repository.ContactRepository
	mailer     mail.Mailer
	logger     *slog.Logger
}

// NewIntakeService creates a new IntakeService instance
func NewIntakeService(
	newsletter repository.NewsletterRepository,
	vips repository.VIPRepository,
	bookings repository.BookingRepository,
	contacts repository.ContactRepository,
	mailer mail.Mailer,
	logger *slog.Logger,
) IntakeService {
	return &intakeService{
		newsletter: newsletter,
		vips:       vips,
		bookings:   bookings,
		contacts:   contacts,
		mailer:     mailer,
		logger:     logger,
	}
}

func (s *intakeService) SubscribeNewsletter(ctx context.Context, email string) (bool, error) {
	created, err := s.newsletter.Subscribe(ctx, &models.NewsletterSubscriber{Email: email})
	if err != nil {
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}
	return created, nil
}

func (s *intakeService) RegisterVIP(ctx context.Context, registration *models.VIPRegistration) error {
	registration.Status = models.VIPStatusNew
	registration.Name = validator.SanitizeString(registration.Name, 255)
	registration.Accessibility = validator.SanitizeString(registration.Accessibility, 2000)
	registration.Notes = validator.SanitizeString(registration.Notes, 2000)
	if err := s.vips.Create(ctx, registration); err != nil {
		return fmt.Errorf("failed to store vip registration: %w", err)
	}

	s.sendConfirmation(ctx, registration.Email,
		"Deine VIP-Anmeldung bei INCLUSIONS",
		fmt.Sprintf("<p>Hallo %s,</p><p>danke für deine VIP-Anmeldung. Wir melden uns, sobald sie bestätigt ist.</p><p>Dein INCLUSIONS-Team</p>", registration.Name))
	return nil
}

func (s *intakeService) RequestBooking(ctx context.Context, request *models.BookingRequest) error {
	request.Status = models.BookingStatusNew
	request.Name = validator.SanitizeString(request.Name, 255)
	request.Message = validator.SanitizeString(request.Message, 5000)
	if err := s.bookings.Create(ctx, request); err != nil {
		return fmt.Errorf("failed to store booking request: %w", err)
	}

	s.sendConfirmation(ctx, request.Email,
		"Deine Booking-Anfrage bei INCLUSIONS",
		fmt.Sprintf("<p>Hallo %s,</p><p>wir haben deine Anfrage erhalten und melden uns so bald wie möglich.</p><p>Dein INCLUSIONS-Team</p>", request.Name))
	return nil
}

func (s *intakeService) ContactRequest(ctx context.Context, name, email, message string) (*models.Contact, error) {
	name = validator.SanitizeString(name, 255)
	message = validator.SanitizeString(message, 5000)
	contact, err := s.contacts.UpsertByEmail(ctx, &models.Contact{
		FirstName: name,
		Email:     email,
		Source:    "website",
		Notes:     "[Kontaktformular] " + message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store contact: %w", err)
	}

	s.sendConfirmation(ctx, email,
		"Danke für deine Nachricht an INCLUSIONS",
		fmt.Sprintf("<p>Hallo %s,</p><p>danke für deine Nachricht. Wir antworten in der Regel innerhalb von zwei Tagen.</p><p>Dein INCLUSIONS-Team</p>", name))
	return contact, nil
}

// sendConfirmation sends best-effort; a failed confirmation never fails the
// form submission.
func (s *intakeService) sendConfirmation(ctx context.Context, to, subject, html string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(ctx, []string{to}, subject, html); err != nil {
		s.logger.Warn("confirmation email failed",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.String("error", err.Error()))
	}
}
