package mail

import (
	"context"
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/config"
)

// RawMessage is a normalized message pulled from a mailbox, ready for storage.
type RawMessage struct {
	ProviderMessageID string
	FromEmail         string
	FromName          string
	ToEmail           string
	Subject           string
	Snippet           string
	BodyText          string
	BodyHTML          string
	AttachmentInfo    string
	ReceivedAt        time.Time
}

// Source fetches messages from a mailbox provider.
type Source interface {
	// FetchSince returns messages received at or after since, newest last.
	FetchSince(ctx context.Context, account config.MailAccount, since time.Time) ([]RawMessage, error)
	// CheckConnection verifies credentials and returns the folder names visible
	// to the account.
	CheckConnection(ctx context.Context, account config.MailAccount) ([]string, error)
}

// Mailer sends outbound mail (digests, form confirmations).
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) error
}
