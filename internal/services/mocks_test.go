package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/inclusions-zone/mailhub-backend/internal/ai"
	"github.com/inclusions-zone/mailhub-backend/internal/config"
	"github.com/inclusions-zone/mailhub-backend/internal/mail"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingNotifier captures broadcast events for assertions
type recordingNotifier struct {
	events   []string
	payloads []interface{}
}

func (r *recordingNotifier) Broadcast(event string, payload interface{}) {
	r.events = append(r.events, event)
	r.payloads = append(r.payloads, payload)
}

// MockMessageRepository is a mock implementation of repository.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) CreateIfNew(ctx context.Context, message *models.EmailMessage) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uint) (*models.EmailMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailMessage), args.Error(1)
}

func (m *MockMessageRepository) ListInbox(ctx context.Context, filter repository.InboxFilter) ([]models.InboxItem, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.InboxItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) InboxStats(ctx context.Context) (*models.InboxStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InboxStats), args.Error(1)
}

func (m *MockMessageRepository) ListUnanalyzed(ctx context.Context, limit int) ([]models.EmailMessage, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.EmailMessage), args.Error(1)
}

func (m *MockMessageRepository) MarkAnalyzed(ctx context.Context, id uint, update repository.AnalysisUpdate, actions []models.EmailAction) error {
	args := m.Called(ctx, id, update, actions)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkAsRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) SetArchived(ctx context.Context, id uint, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func (m *MockMessageRepository) AppendNote(ctx context.Context, id uint, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) CountReceivedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) ListReceivedSince(ctx context.Context, since time.Time) ([]models.EmailMessage, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.EmailMessage), args.Error(1)
}

func (m *MockMessageRepository) ClassificationCountsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockActionRepository is a mock implementation of repository.ActionRepository
type MockActionRepository struct {
	mock.Mock
}

func (m *MockActionRepository) Create(ctx context.Context, action *models.EmailAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockActionRepository) GetByID(ctx context.Context, id uint) (*models.EmailAction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailAction), args.Error(1)
}

func (m *MockActionRepository) ListViews(ctx context.Context, filter repository.ActionFilter) ([]models.ActionView, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.ActionView), args.Error(1)
}

func (m *MockActionRepository) MarkApplied(ctx context.Context, id uint, actor, resultType string, resultID uint) error {
	args := m.Called(ctx, id, actor, resultType, resultID)
	return args.Error(0)
}

func (m *MockActionRepository) MarkRejected(ctx context.Context, id uint, actor string) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockActionRepository) CountSuggested(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActionRepository) CountSuggestedForMessage(ctx context.Context, emailMessageID uint) (int64, error) {
	args := m.Called(ctx, emailMessageID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActionRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActionRepository) CountByStatusSince(ctx context.Context, status models.ActionStatus, since time.Time) (int64, error) {
	args := m.Called(ctx, status, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockDigestRepository is a mock implementation of repository.DigestRepository
type MockDigestRepository struct {
	mock.Mock
}

func (m *MockDigestRepository) Create(ctx context.Context, digest *models.EmailDigest) error {
	args := m.Called(ctx, digest)
	return args.Error(0)
}

func (m *MockDigestRepository) GetLatest(ctx context.Context) (*models.EmailDigest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailDigest), args.Error(1)
}

// MockContactRepository is a mock implementation of repository.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) UpsertByEmail(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactRepository) GetByID(ctx context.Context, id uint) (*models.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Contact), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of repository.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context, limit, offset int) ([]models.Company, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Company), args.Get(1).(int64), args.Error(2)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDealRepository is a mock implementation of repository.DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByID(ctx context.Context, id uint) (*models.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deal), args.Error(1)
}

func (m *MockDealRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Deal, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.Deal), args.Get(1).(int64), args.Error(2)
}

func (m *MockDealRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockDealRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingRepository is a mock implementation of repository.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.BookingRequest) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uint) (*models.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRequest), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, status string, limit, offset int) ([]models.BookingRequest, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.BookingRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVIPRepository is a mock implementation of repository.VIPRepository
type MockVIPRepository struct {
	mock.Mock
}

func (m *MockVIPRepository) Create(ctx context.Context, registration *models.VIPRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockVIPRepository) GetByID(ctx context.Context, id uint) (*models.VIPRegistration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VIPRegistration), args.Error(1)
}

func (m *MockVIPRepository) List(ctx context.Context, status string, limit, offset int) ([]models.VIPRegistration, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.VIPRegistration), args.Get(1).(int64), args.Error(2)
}

func (m *MockVIPRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockVIPRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNewsletterRepository is a mock implementation of repository.NewsletterRepository
type MockNewsletterRepository struct {
	mock.Mock
}

func (m *MockNewsletterRepository) Subscribe(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error) {
	args := m.Called(ctx, subscriber)
	return args.Bool(0), args.Error(1)
}

func (m *MockNewsletterRepository) List(ctx context.Context, limit, offset int) ([]models.NewsletterSubscriber, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.NewsletterSubscriber), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsletterRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSource is a mock implementation of mail.Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchSince(ctx context.Context, account config.MailAccount, since time.Time) ([]mail.RawMessage, error) {
	args := m.Called(ctx, account, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mail.RawMessage), args.Error(1)
}

func (m *MockSource) CheckConnection(ctx context.Context, account config.MailAccount) ([]string, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockClassifier is a mock implementation of ai.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, input ai.Input) (*ai.Analysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.Analysis), args.Error(1)
}

// MockMailer is a mock implementation of mail.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to []string, subject, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}

// MockApplier is a mock implementation of Applier
type MockApplier struct {
	mock.Mock
}

func (m *MockApplier) Apply(ctx context.Context, action *models.EmailAction, message *models.EmailMessage) (*ApplyResult, error) {
	args := m.Called(ctx, action, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ApplyResult), args.Error(1)
}
