package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/inclusions-zone/mailhub-backend/internal/errors"
	"github.com/inclusions-zone/mailhub-backend/internal/mail"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/websocket"
)

// DigestResult summarizes one digest run.
type DigestResult struct {
	Sent        bool   `json:"sent"`
	DigestID    string `json:"digest_id,omitempty"`
	EmailCount  int    `json:"email_count"`
	ActionCount int    `json:"action_count"`
	Reason      string `json:"reason,omitempty"`
}

// DigestService renders and sends the team digest email
type DigestService interface {
	// SendDaily sends a digest covering everything since the last sent
	// digest (24 h on the very first run). When nothing new arrived it sends
	// nothing and reports why.
	SendDaily(ctx context.Context) (*DigestResult, error)
}

// digestService implements DigestService
type digestService struct {
	messages   repository.MessageRepository
	actions    repository.ActionRepository
	digests    repository.DigestRepository
	mailer     mail.Mailer
	recipients []string
	notifier   Notifier
	logger     *slog.Logger
}

// NewDigestService creates a new DigestService instance
func NewDigestService(
	messages repository.MessageRepository,
	actions repository.ActionRepository,
	digests repository.DigestRepository,
	mailer mail.Mailer,
	recipients []string,
	notifier Notifier,
	logger *slog.Logger,
) DigestService {
	return &digestService{
		messages:   messages,
		actions:    actions,
		digests:    digests,
		mailer:     mailer,
		recipients: recipients,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *digestService) SendDaily(ctx context.Context) (*DigestResult, error) {
	if len(s.recipients) == 0 {
		return nil, fmt.Errorf("%w: no digest recipients configured", apperrors.ErrMailerNotConfigured)
	}

	since, err := s.windowStart(ctx)
	if err != nil {
		return nil, err
	}

	emailCount, err := s.messages.CountReceivedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	actionCount, err := s.actions.CountCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count actions: %w", err)
	}

	result := &DigestResult{
		EmailCount:  int(emailCount),
		ActionCount: int(actionCount),
	}

	if emailCount == 0 && actionCount == 0 {
		result.Reason = "nothing to send"
		s.logger.Info("digest skipped, nothing new",
			slog.Time("since", since))
		return result, nil
	}

	messages, err := s.messages.ListReceivedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	counts, err := s.messages.ClassificationCountsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count classifications: %w", err)
	}
	suggested, err := s.actions.CountSuggested(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count suggested actions: %w", err)
	}

	html, urgentCount, err := renderDigest(messages, counts, suggested, since)
	if err != nil {
		return nil, fmt.Errorf("failed to render digest: %w", err)
	}

	subject := fmt.Sprintf("INCLUSIONS E-Mail-Digest – %s", time.Now().Format("02.01.2006"))
	if err := s.mailer.Send(ctx, s.recipients, subject, html); err != nil {
		// No digest row on a failed send; the next run covers this window
		// again.
		return nil, fmt.Errorf("failed to send digest: %w", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"by_classification": counts,
		"urgent_count":      urgentCount,
		"suggested_actions": suggested,
	})
	digest := &models.EmailDigest{
		ID:          uuid.New().String(),
		Recipients:  strings.Join(s.recipients, ","),
		EmailCount:  int(emailCount),
		ActionCount: int(actionCount),
		Payload:     string(payload),
	}
	if err := s.digests.Create(ctx, digest); err != nil {
		return nil, fmt.Errorf("failed to record digest: %w", err)
	}

	result.Sent = true
	result.DigestID = digest.ID

	s.logger.Info("digest sent",
		slog.String("digest_id", digest.ID),
		slog.Int("email_count", result.EmailCount),
		slog.Int("action_count", result.ActionCount),
		slog.Int("recipients", len(s.recipients)))

	if s.notifier != nil {
		s.notifier.Broadcast(websocket.EventDigestSent, map[string]interface{}{
			"digest_id":   digest.ID,
			"email_count": result.EmailCount,
		})
	}

	return result, nil
}

func (s *digestService) windowStart(ctx context.Context) (time.Time, error) {
	latest, err := s.digests.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return time.Now().UTC().Add(-24 * time.Hour), nil
		}
		return time.Time{}, fmt.Errorf("failed to load last digest: %w", err)
	}
	return latest.CreatedAt, nil
}

type digestItem struct {
	Subject        string
	From           string
	Account        string
	Classification string
	Urgency        string
	Summary        string
}

type digestData struct {
	Since     string
	Total     int
	Urgent    []digestItem
	Counts    map[string]int64
	Latest    []digestItem
	Suggested int64
}

const digestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; max-width: 640px; margin: 0 auto; color: #1F2937;">
  <h1 style="font-size: 20px;">INCLUSIONS E-Mail-Digest</h1>
  <p style="color: #6B7280; font-size: 13px;">Seit {{.Since}}: {{.Total}} E-Mails, {{.Suggested}} offene Aktionen</p>
  {{if .Urgent}}
  <div style="background: #FEF2F2; padding: 16px; border-radius: 12px;">
    <h2 style="color: #DC2626; font-size: 16px; margin: 0 0 12px 0;">Dringend ({{len .Urgent}})</h2>
    {{range .Urgent}}
    <p style="margin: 0 0 8px 0; font-size: 13px;"><strong>{{.Subject}}</strong><br>{{.From}} ({{.Account}}) – {{.Summary}}</p>
    {{end}}
  </div>
  {{end}}
  {{if .Counts}}
  <h2 style="font-size: 16px;">Kategorien</h2>
  <ul style="font-size: 13px;">
    {{range $label, $count := .Counts}}<li>{{$label}}: {{$count}}</li>
    {{end}}
  </ul>
  {{end}}
  <h2 style="font-size: 16px;">Letzte E-Mails</h2>
  {{range .Latest}}
  <p style="margin: 0 0 6px 0; font-size: 13px;"><strong>{{.From}}</strong> ({{.Account}}) – {{.Subject}}</p>
  {{end}}
</body>
</html>`

var digestTmpl = template.Must(template.New("digest").Parse(digestTemplate))

func renderDigest(messages []models.EmailMessage, counts map[string]int64, suggested int64, since time.Time) (string, int, error) {
	data := digestData{
		Since:     since.Format("02.01.2006 15:04"),
		Total:     len(messages),
		Counts:    counts,
		Suggested: suggested,
	}

	for _, msg := range messages {
		item := digestItem{
			Subject: msg.Subject,
			From:    msg.FromEmail,
			Account: msg.Account,
			Urgency: msg.Urgency,
			Summary: msg.Summary,
		}
		if msg.FromName != "" {
			item.From = msg.FromName
		}
		if msg.Classification != nil {
			item.Classification = *msg.Classification
		}
		if msg.Urgency == "high" || msg.Urgency == "critical" {
			data.Urgent = append(data.Urgent, item)
		}
		if len(data.Latest) < 20 {
			data.Latest = append(data.Latest, item)
		}
	}

	var out strings.Builder
	if err := digestTmpl.Execute(&out, data); err != nil {
		return "", 0, err
	}
	return out.String(), len(data.Urgent), nil
}
