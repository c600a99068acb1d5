package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inclusions-zone/mailhub-backend/internal/ai"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
)

func unanalyzedMessage(id uint, subject string) models.EmailMessage {
	return models.EmailMessage{
		ID:         id,
		Account:    "info@inclusions.zone",
		FromEmail:  "sender@example.org",
		Subject:    subject,
		BodyText:   "Hallo, wir haben eine Frage.",
		ReceivedAt: time.Now().UTC().Add(-time.Hour),
	}
}

func sponsoringAnalysis() *ai.Analysis {
	return &ai.Analysis{
		Classification: ai.LabelSponsoring,
		Urgency:        ai.UrgencyHigh,
		Sentiment:      "positiv",
		Summary:        "Sponsoring-Angebot.",
		Proposals: []ai.ActionProposal{
			{Kind: models.ActionKindCreateContact, Reason: "Neue Kontaktperson", Payload: `{"email":"sender@example.org"}`},
		},
	}
}

// ==================== AnalyzeUnprocessed Tests ====================

func TestAnalyzeUnprocessed_PersistsAnalysisAndActions(t *testing.T) {
	// Arrange
	mockRepo := new(MockMessageRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("ListUnanalyzed", mock.Anything, 10).
		Return([]models.EmailMessage{unanalyzedMessage(1, "Sponsoring")}, nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).Return(sponsoringAnalysis(), nil)

	var gotUpdate repository.AnalysisUpdate
	var gotActions []models.EmailAction
	mockRepo.On("MarkAnalyzed", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotUpdate = args.Get(2).(repository.AnalysisUpdate)
			gotActions = args.Get(3).([]models.EmailAction)
		}).
		Return(nil)

	service := NewAnalysisService(mockRepo, mockClassifier, 100, nil, testLogger())

	// Act
	result, err := service.AnalyzeUnprocessed(context.Background(), 10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, ai.LabelSponsoring, gotUpdate.Classification)
	assert.Equal(t, ai.UrgencyHigh, gotUpdate.Urgency)
	require.Len(t, gotActions, 1)
	assert.Equal(t, models.ActionKindCreateContact, gotActions[0].Kind)
	assert.Equal(t, uint(1), gotActions[0].EmailMessageID)
}

func TestAnalyzeUnprocessed_OneFailureOneSuccess(t *testing.T) {
	// Arrange: two pending messages, the classifier fails on the first one.
	mockRepo := new(MockMessageRepository)
	mockClassifier := new(MockClassifier)

	first := unanalyzedMessage(1, "Kaputt")
	second := unanalyzedMessage(2, "Sponsoring")
	mockRepo.On("ListUnanalyzed", mock.Anything, 2).
		Return([]models.EmailMessage{first, second}, nil)

	mockClassifier.On("Classify", mock.Anything, mock.MatchedBy(func(in ai.Input) bool { return in.Subject == "Kaputt" })).
		Return(nil, ai.ErrInvalidResponse)
	mockClassifier.On("Classify", mock.Anything, mock.MatchedBy(func(in ai.Input) bool { return in.Subject == "Sponsoring" })).
		Return(sponsoringAnalysis(), nil)
	mockRepo.On("MarkAnalyzed", mock.Anything, uint(2), mock.Anything, mock.Anything).Return(nil)

	service := NewAnalysisService(mockRepo, mockClassifier, 100, nil, testLogger())

	// Act
	result, err := service.AnalyzeUnprocessed(context.Background(), 2)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.Items, 2)
	assert.NotEmpty(t, result.Items[0].Error)
	assert.Equal(t, ai.LabelSponsoring, result.Items[1].Classification)
	// The failed message must not be written at all so it stays retryable.
	mockRepo.AssertNotCalled(t, "MarkAnalyzed", mock.Anything, uint(1), mock.Anything, mock.Anything)
}

func TestAnalyzeUnprocessed_PersistFailureIsCounted(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("ListUnanalyzed", mock.Anything, 1).
		Return([]models.EmailMessage{unanalyzedMessage(1, "Sponsoring")}, nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).Return(sponsoringAnalysis(), nil)
	mockRepo.On("MarkAnalyzed", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Return(repository.ErrNotFound)

	service := NewAnalysisService(mockRepo, mockClassifier, 100, nil, testLogger())

	result, err := service.AnalyzeUnprocessed(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Analyzed)
	assert.Equal(t, 1, result.Errors)
}

func TestAnalyzeUnprocessed_NothingPending(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	mockRepo.On("ListUnanalyzed", mock.Anything, DefaultAnalyzeLimit).
		Return([]models.EmailMessage{}, nil)

	service := NewAnalysisService(mockRepo, new(MockClassifier), 100, nil, testLogger())

	result, err := service.AnalyzeUnprocessed(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Analyzed)
	assert.Equal(t, 0, result.Errors)
	assert.Empty(t, result.Items)
}
