package smtp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"github.com/inclusions-zone/mailhub-backend/internal/mail"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/websocket"
)

// Session implements the go-smtp Session interface
type Session struct {
	backend    *Backend
	from       string
	recipients []string
}

// NewSession creates a new SMTP session
func NewSession(backend *Backend) *Session {
	return &Session{
		backend:    backend,
		recipients: make([]string, 0),
	}
}

// AuthPlain handles PLAIN authentication (not required for receiving)
func (s *Session) AuthPlain(username, password string) error {
	// No authentication required for receiving emails
	return nil
}

// Mail handles the MAIL FROM command
func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	if s.backend.logger != nil {
		s.backend.logger.Debug("MAIL FROM", slog.String("from", from))
	}
	return nil
}

// Rcpt handles the RCPT TO command. Only addresses belonging to a
// configured hub account are accepted.
func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	account, ok := s.backend.resolveAccount(normalizeAddress(to))
	if !ok {
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 1},
			Message:      "Mailbox not found",
		}
	}

	s.recipients = append(s.recipients, account)
	if s.backend.logger != nil {
		s.backend.logger.Debug("RCPT TO", slog.String("to", to), slog.String("account", account))
	}
	return nil
}

// Data handles the DATA command - receives the email content
func (s *Session) Data(r io.Reader) error {
	if len(s.recipients) == 0 {
		return &smtp.SMTPError{
			Code:         503,
			EnhancedCode: smtp.EnhancedCode{5, 5, 1},
			Message:      "No recipients specified",
		}
	}

	// Parse the email
	parsed, err := mail.ParseEmail(r)
	if err != nil {
		if s.backend.logger != nil {
			s.backend.logger.Error("failed to parse email", slog.Any("error", err))
		}
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 6, 0},
			Message:      "Failed to parse email",
		}
	}

	// Override sender from envelope if not in headers
	if parsed.SenderEmail == "" {
		parsed.SenderEmail = normalizeAddress(s.from)
	}

	ctx := context.Background()
	saved := 0

	// Store for each recipient account
	for _, account := range s.recipients {
		created, err := s.storeMessage(ctx, account, parsed)
		if err != nil {
			if s.backend.logger != nil {
				s.backend.logger.Error("failed to store email",
					slog.String("account", account),
					slog.Any("error", err))
			}
			// Continue processing other recipients
			continue
		}
		if created {
			saved++
		}
	}

	if s.backend.logger != nil {
		s.backend.logger.Info("email received",
			slog.String("from", s.from),
			slog.Int("recipients", len(s.recipients)),
			slog.Int("saved", saved),
			slog.String("subject", parsed.Subject))
	}

	if saved > 0 && s.backend.notifier != nil {
		s.backend.notifier.Broadcast(websocket.EventMessagesIngested, map[string]interface{}{
			"source": "smtp",
			"saved":  saved,
		})
	}

	return nil
}

// storeMessage persists the email for one account through the dedupe path.
// A duplicate Message-Id for the same account is skipped, not an error.
func (s *Session) storeMessage(ctx context.Context, account string, parsed *mail.ParsedEmail) (bool, error) {
	providerID := parsed.MessageID
	if providerID == "" {
		providerID = fmt.Sprintf("smtp-%s", uuid.New().String())
	}

	message := &models.EmailMessage{
		Account:           account,
		ProviderMessageID: providerID,
		FromEmail:         parsed.SenderEmail,
		FromName:          parsed.SenderName,
		ToEmail:           account,
		Subject:           parsed.Subject,
		BodyText:          parsed.BodyText,
		BodyHTML:          parsed.BodyHTML,
		HasAttachments:    parsed.AttachmentInfo != "",
		AttachmentInfo:    parsed.AttachmentInfo,
		ReceivedAt:        time.Now().UTC(),
	}

	created, err := s.backend.messageRepo.CreateIfNew(ctx, message)
	if err != nil {
		return false, fmt.Errorf("failed to create message: %w", err)
	}
	return created, nil
}

// Reset resets the session state
func (s *Session) Reset() {
	s.from = ""
	s.recipients = make([]string, 0)
}

// Logout handles the end of the session
func (s *Session) Logout() error {
	return nil
}

// normalizeAddress strips angle brackets and surrounding whitespace from an
// envelope address.
func normalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	address = strings.TrimPrefix(address, "<")
	address = strings.TrimSuffix(address, ">")
	return strings.TrimSpace(address)
}
