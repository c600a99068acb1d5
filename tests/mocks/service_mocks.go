package mocks

import (
	"context"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockIngestionService implements services.IngestionService
type MockIngestionService struct {
	mock.Mock
}

// IngestAccount ingests one configured account
func (m *MockIngestionService) IngestAccount(ctx context.Context, account string, sinceDays int) (*services.AccountResult, error) {
	args := m.Called(ctx, account, sinceDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AccountResult), args.Error(1)
}

// IngestAll ingests every configured account
func (m *MockIngestionService) IngestAll(ctx context.Context, sinceDays int) ([]services.AccountResult, error) {
	args := m.Called(ctx, sinceDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.AccountResult), args.Error(1)
}

// TestConnections verifies login for every configured account
func (m *MockIngestionService) TestConnections(ctx context.Context) []services.ConnectionStatus {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]services.ConnectionStatus)
}

// MockAnalysisService implements services.AnalysisService
type MockAnalysisService struct {
	mock.Mock
}

// AnalyzeUnprocessed classifies up to limit unanalyzed messages
func (m *MockAnalysisService) AnalyzeUnprocessed(ctx context.Context, limit int) (*services.BatchResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BatchResult), args.Error(1)
}

// MockActionService implements services.ActionService
type MockActionService struct {
	mock.Mock
}

// List retrieves actions joined with message context
func (m *MockActionService) List(ctx context.Context, filter repository.ActionFilter) ([]models.ActionView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActionView), args.Error(1)
}

// Decide approves or rejects a suggested action
func (m *MockActionService) Decide(ctx context.Context, id uint, decision, actor string) (*models.EmailAction, error) {
	args := m.Called(ctx, id, decision, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailAction), args.Error(1)
}

// MockDigestService implements services.DigestService
type MockDigestService struct {
	mock.Mock
}

// SendDaily sends a digest covering everything since the last one
func (m *MockDigestService) SendDaily(ctx context.Context) (*services.DigestResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DigestResult), args.Error(1)
}

// MockIntakeService implements services.IntakeService
type MockIntakeService struct {
	mock.Mock
}

// SubscribeNewsletter subscribes an email address
func (m *MockIntakeService) SubscribeNewsletter(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// RegisterVIP stores a VIP registration
func (m *MockIntakeService) RegisterVIP(ctx context.Context, registration *models.VIPRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

// RequestBooking stores a booking request
func (m *MockIntakeService) RequestBooking(ctx context.Context, request *models.BookingRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// ContactRequest stores the sender as a CRM contact
func (m *MockIntakeService) ContactRequest(ctx context.Context, name, email, message string) (*models.Contact, error) {
	args := m.Called(ctx, name, email, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}
