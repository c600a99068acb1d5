package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/inclusions-zone/mailhub-backend/internal/ai"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/websocket"
)

// AnalyzedItem is one message's outcome in a batch analysis run.
type AnalyzedItem struct {
	ID             uint   `json:"id"`
	Subject        string `json:"subject"`
	Classification string `json:"classification,omitempty"`
	Urgency        string `json:"urgency,omitempty"`
	Actions        int    `json:"actions"`
	Error          string `json:"error,omitempty"`
}

// BatchResult summarizes one batch analysis run.
type BatchResult struct {
	Analyzed int            `json:"analyzed"`
	Errors   int            `json:"errors"`
	Items    []AnalyzedItem `json:"items"`
}

// AnalysisService classifies stored messages that have not been analyzed yet
type AnalysisService interface {
	// AnalyzeUnprocessed classifies up to limit unanalyzed messages, oldest
	// first. A failed classification leaves the message untouched so the next
	// run retries it.
	AnalyzeUnprocessed(ctx context.Context, limit int) (*BatchResult, error)
}

// DefaultAnalyzeLimit bounds one batch when the caller passes none.
const DefaultAnalyzeLimit = 20

// analysisService implements AnalysisService
type analysisService struct {
	repo       repository.MessageRepository
	classifier ai.Classifier
	limiter    *rate.Limiter
	notifier   Notifier
	logger     *slog.Logger
}

// NewAnalysisService creates a new AnalysisService instance. callsPerSecond
// paces the classifier API calls.
func NewAnalysisService(repo repository.MessageRepository, classifier ai.Classifier, callsPerSecond float64, notifier Notifier, logger *slog.Logger) AnalysisService {
	if callsPerSecond <= 0 {
		callsPerSecond = 2
	}
	return &analysisService{
		repo:       repo,
		classifier: classifier,
		limiter:    rate.NewLimiter(rate.Limit(callsPerSecond), 1),
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *analysisService) AnalyzeUnprocessed(ctx context.Context, limit int) (*BatchResult, error) {
	if limit <= 0 {
		limit = DefaultAnalyzeLimit
	}

	messages, err := s.repo.ListUnanalyzed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unanalyzed messages: %w", err)
	}

	result := &BatchResult{Items: make([]AnalyzedItem, 0, len(messages))}

	for i := range messages {
		message := &messages[i]
		item := AnalyzedItem{ID: message.ID, Subject: message.Subject}

		if err := s.limiter.Wait(ctx); err != nil {
			return result, err
		}

		analysis, err := s.classifier.Classify(ctx, ai.Input{
			Account:    message.Account,
			FromName:   message.FromName,
			FromEmail:  message.FromEmail,
			ToEmail:    message.ToEmail,
			Subject:    message.Subject,
			BodyText:   message.BodyText,
			ReceivedAt: message.ReceivedAt,
		})
		if err != nil {
			result.Errors++
			item.Error = err.Error()
			result.Items = append(result.Items, item)
			s.logger.Warn("classification failed",
				slog.Uint64("message_id", uint64(message.ID)),
				slog.String("subject", message.Subject),
				slog.String("error", err.Error()))
			continue
		}

		actions := make([]models.EmailAction, 0, len(analysis.Proposals))
		for _, proposal := range analysis.Proposals {
			actions = append(actions, models.EmailAction{
				EmailMessageID: message.ID,
				Kind:           proposal.Kind,
				Payload:        proposal.Payload,
				Reason:         proposal.Reason,
			})
		}

		update := repository.AnalysisUpdate{
			Classification: analysis.Classification,
			Summary:        analysis.Summary,
			Urgency:        analysis.Urgency,
			Sentiment:      analysis.Sentiment,
			AnalyzedAt:     time.Now().UTC(),
		}
		if err := s.repo.MarkAnalyzed(ctx, message.ID, update, actions); err != nil {
			result.Errors++
			item.Error = err.Error()
			result.Items = append(result.Items, item)
			s.logger.Error("failed to persist analysis",
				slog.Uint64("message_id", uint64(message.ID)),
				slog.String("error", err.Error()))
			continue
		}

		result.Analyzed++
		item.Classification = analysis.Classification
		item.Urgency = analysis.Urgency
		item.Actions = len(actions)
		result.Items = append(result.Items, item)

		if len(actions) > 0 && s.notifier != nil {
			s.notifier.Broadcast(websocket.EventActionsSuggested, map[string]interface{}{
				"message_id": message.ID,
				"count":      len(actions),
			})
		}
	}

	s.logger.Info("analysis batch finished",
		slog.Int("analyzed", result.Analyzed),
		slog.Int("errors", result.Errors))

	return result, nil
}
