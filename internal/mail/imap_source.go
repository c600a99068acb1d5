package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	imapv2 "github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/google/uuid"

	"github.com/inclusions-zone/mailhub-backend/internal/config"
)

// IMAPSource fetches mail over IMAPS. One connection per call; the poll cadence
// is slow enough that keeping sessions open buys nothing.
type IMAPSource struct {
	host   string
	port   int
	logger *slog.Logger
}

// NewIMAPSource creates an IMAP-backed Source for the given server
func NewIMAPSource(host string, port int, logger *slog.Logger) *IMAPSource {
	return &IMAPSource{host: host, port: port, logger: logger}
}

// FetchSince retrieves INBOX messages received at or after since
func (s *IMAPSource) FetchSince(ctx context.Context, account config.MailAccount, since time.Time) ([]RawMessage, error) {
	client, cleanup, err := s.dial(ctx, account)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		return nil, fmt.Errorf("failed to select INBOX for %s: %w", account.Address, err)
	}

	searchData, err := client.UIDSearch(&imapv2.SearchCriteria{Since: since}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to search mailbox %s: %w", account.Address, err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	fetchOptions := &imapv2.FetchOptions{
		UID:          true,
		Envelope:     true,
		InternalDate: true,
		BodySection:  []*imapv2.FetchItemBodySection{{}},
	}
	buffers, err := client.Fetch(imapv2.UIDSetNum(uids...), fetchOptions).Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages for %s: %w", account.Address, err)
	}

	messages := make([]RawMessage, 0, len(buffers))
	for _, buf := range buffers {
		raw := buf.FindBodySection(&imapv2.FetchItemBodySection{})
		if raw == nil {
			s.logger.Warn("message body missing, skipping",
				slog.String("account", account.Address),
				slog.Uint64("uid", uint64(buf.UID)))
			continue
		}

		parsed, err := ParseEmail(bytes.NewReader(raw))
		if err != nil {
			s.logger.Warn("failed to parse message",
				slog.String("account", account.Address),
				slog.Uint64("uid", uint64(buf.UID)),
				slog.String("error", err.Error()))
			continue
		}

		msg := RawMessage{
			ProviderMessageID: parsed.MessageID,
			FromEmail:         parsed.SenderEmail,
			FromName:          parsed.SenderName,
			ToEmail:           account.Address,
			Subject:           parsed.Subject,
			Snippet:           parsed.Snippet,
			BodyText:          parsed.BodyText,
			BodyHTML:          parsed.BodyHTML,
			AttachmentInfo:    parsed.AttachmentInfo,
			ReceivedAt:        buf.InternalDate,
		}
		if msg.ReceivedAt.IsZero() && buf.Envelope != nil {
			msg.ReceivedAt = buf.Envelope.Date
		}
		if msg.ReceivedAt.IsZero() {
			msg.ReceivedAt = time.Now().UTC()
		}
		// Some automated senders omit Message-Id. Synthesize a stable-enough
		// identity so the row can still be stored.
		if msg.ProviderMessageID == "" {
			msg.ProviderMessageID = fmt.Sprintf("gen-%s-%d-%s", account.Address, buf.UID, uuid.New().String())
		}

		messages = append(messages, msg)
	}

	return messages, nil
}

// CheckConnection logs in and lists the account's folders
func (s *IMAPSource) CheckConnection(ctx context.Context, account config.MailAccount) ([]string, error) {
	client, cleanup, err := s.dial(ctx, account)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	listData, err := client.List("", "*", nil).Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to list folders for %s: %w", account.Address, err)
	}

	folders := make([]string, 0, len(listData))
	for _, mbox := range listData {
		folders = append(folders, mbox.Mailbox)
	}
	return folders, nil
}

func (s *IMAPSource) dial(ctx context.Context, account config.MailAccount) (*imapclient.Client, func(), error) {
	address := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	options := &imapclient.Options{
		TLSConfig: &tls.Config{ServerName: s.host},
	}

	client, err := imapclient.DialTLS(address, options)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial imap %s: %w", address, err)
	}

	if err := client.Login(account.Username, account.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("imap login failed for %s: %w", account.Address, err)
	}

	stopClose := context.AfterFunc(ctx, func() {
		_ = client.Close()
	})

	cleanup := func() {
		stopClose()
		if ctx.Err() == nil {
			if err := client.Logout().Wait(); err != nil {
				s.logger.Warn("imap logout failed",
					slog.String("account", account.Address),
					slog.String("error", err.Error()))
			}
		}
		_ = client.Close()
	}

	return client, cleanup, nil
}
