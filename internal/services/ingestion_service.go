package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/config"
	apperrors "github.com/inclusions-zone/mailhub-backend/internal/errors"
	"github.com/inclusions-zone/mailhub-backend/internal/mail"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/websocket"
)

// Notifier pushes events to connected dashboard clients. Implementations must
// tolerate being called from any goroutine.
type Notifier interface {
	Broadcast(event string, payload interface{})
}

// AccountResult summarizes one ingestion run for one account.
type AccountResult struct {
	Account string `json:"account"`
	Fetched int    `json:"fetched"`
	Saved   int    `json:"saved"`
	Skipped int    `json:"skipped"`
	Errors  int    `json:"errors"`
	Error   string `json:"error,omitempty"`
}

// ConnectionStatus reports one account's IMAP connectivity check.
type ConnectionStatus struct {
	Account string   `json:"account"`
	OK      bool     `json:"ok"`
	Folders []string `json:"folders,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// IngestionService pulls mail from the configured accounts into storage
type IngestionService interface {
	// IngestAccount fetches and stores messages for one account. Per-message
	// failures are counted, not fatal; only a fetch-level failure yields an
	// error.
	IngestAccount(ctx context.Context, account string, sinceDays int) (*AccountResult, error)
	// IngestAll ingests every configured account. The returned error is nil
	// iff no account-level failure occurred.
	IngestAll(ctx context.Context, sinceDays int) ([]AccountResult, error)
	// TestConnections verifies IMAP login for every configured account.
	TestConnections(ctx context.Context) []ConnectionStatus
}

// DefaultSinceDays is the lookback window when the caller passes none.
const DefaultSinceDays = 7

// ingestionService implements IngestionService
type ingestionService struct {
	accounts []config.MailAccount
	source   mail.Source
	repo     repository.MessageRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewIngestionService creates a new IngestionService instance
func NewIngestionService(accounts []config.MailAccount, source mail.Source, repo repository.MessageRepository, notifier Notifier, logger *slog.Logger) IngestionService {
	return &ingestionService{
		accounts: accounts,
		source:   source,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *ingestionService) IngestAccount(ctx context.Context, account string, sinceDays int) (*AccountResult, error) {
	acct, ok := s.findAccount(account)
	if !ok {
		return nil, fmt.Errorf("%w: unknown account %s", apperrors.ErrInvalidInput, account)
	}
	result := s.ingest(ctx, acct, sinceDays)
	if result.Error != "" {
		return result, fmt.Errorf("ingestion failed for %s: %s", account, result.Error)
	}
	return result, nil
}

func (s *ingestionService) IngestAll(ctx context.Context, sinceDays int) ([]AccountResult, error) {
	if len(s.accounts) == 0 {
		return nil, apperrors.ErrNoAccountsConfigured
	}

	results := make([]AccountResult, 0, len(s.accounts))
	var failed int
	for _, acct := range s.accounts {
		result := s.ingest(ctx, acct, sinceDays)
		if result.Error != "" {
			failed++
		}
		results = append(results, *result)
	}

	if failed > 0 {
		return results, fmt.Errorf("ingestion failed for %d of %d accounts", failed, len(s.accounts))
	}
	return results, nil
}

func (s *ingestionService) TestConnections(ctx context.Context) []ConnectionStatus {
	statuses := make([]ConnectionStatus, 0, len(s.accounts))
	for _, acct := range s.accounts {
		status := ConnectionStatus{Account: acct.Address}
		folders, err := s.source.CheckConnection(ctx, acct)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.OK = true
			status.Folders = folders
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *ingestionService) ingest(ctx context.Context, acct config.MailAccount, sinceDays int) *AccountResult {
	if sinceDays <= 0 {
		sinceDays = DefaultSinceDays
	}
	since := time.Now().UTC().Add(-time.Duration(sinceDays) * 24 * time.Hour)
	result := &AccountResult{Account: acct.Address}

	fetched, err := s.source.FetchSince(ctx, acct, since)
	if err != nil {
		result.Error = err.Error()
		s.logger.Error("mailbox fetch failed",
			slog.String("account", acct.Address),
			slog.String("error", err.Error()))
		return result
	}
	result.Fetched = len(fetched)

	for _, raw := range fetched {
		message := &models.EmailMessage{
			Account:           acct.Address,
			ProviderMessageID: raw.ProviderMessageID,
			FromEmail:         raw.FromEmail,
			FromName:          raw.FromName,
			ToEmail:           raw.ToEmail,
			Subject:           raw.Subject,
			BodyText:          raw.BodyText,
			BodyHTML:          raw.BodyHTML,
			HasAttachments:    raw.AttachmentInfo != "",
			AttachmentInfo:    raw.AttachmentInfo,
			ReceivedAt:        raw.ReceivedAt,
		}

		created, err := s.repo.CreateIfNew(ctx, message)
		if err != nil {
			result.Errors++
			s.logger.Warn("failed to store message",
				slog.String("account", acct.Address),
				slog.String("provider_message_id", raw.ProviderMessageID),
				slog.String("error", err.Error()))
			continue
		}
		if created {
			result.Saved++
		} else {
			result.Skipped++
		}
	}

	s.logger.Info("account ingested",
		slog.String("account", acct.Address),
		slog.Int("fetched", result.Fetched),
		slog.Int("saved", result.Saved),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", result.Errors))

	if result.Saved > 0 && s.notifier != nil {
		s.notifier.Broadcast(websocket.EventMessagesIngested, map[string]interface{}{
			"account": acct.Address,
			"saved":   result.Saved,
		})
	}

	return result
}

func (s *ingestionService) findAccount(address string) (config.MailAccount, bool) {
	for _, acct := range s.accounts {
		if acct.Address == address {
			return acct, true
		}
	}
	return config.MailAccount{}, false
}
