package mocks

import (
	"context"
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository implements repository.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// CreateIfNew inserts a message unless its identity already exists
func (m *MockMessageRepository) CreateIfNew(ctx context.Context, message *models.EmailMessage) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// GetByID retrieves a message by its ID
func (m *MockMessageRepository) GetByID(ctx context.Context, id uint) (*models.EmailMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailMessage), args.Error(1)
}

// ListInbox retrieves inbox items matching the filter
func (m *MockMessageRepository) ListInbox(ctx context.Context, filter repository.InboxFilter) ([]models.InboxItem, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.InboxItem), args.Get(1).(int64), args.Error(2)
}

// InboxStats computes inbox counters
func (m *MockMessageRepository) InboxStats(ctx context.Context) (*models.InboxStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InboxStats), args.Error(1)
}

// ListUnanalyzed returns unclassified messages
func (m *MockMessageRepository) ListUnanalyzed(ctx context.Context, limit int) ([]models.EmailMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EmailMessage), args.Error(1)
}

// MarkAnalyzed persists a classification with its proposed actions
func (m *MockMessageRepository) MarkAnalyzed(ctx context.Context, id uint, update repository.AnalysisUpdate, actions []models.EmailAction) error {
	args := m.Called(ctx, id, update, actions)
	return args.Error(0)
}

// MarkAsRead marks a message as read
func (m *MockMessageRepository) MarkAsRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SetArchived archives or unarchives a message
func (m *MockMessageRepository) SetArchived(ctx context.Context, id uint, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

// AppendNote appends a note line to the message
func (m *MockMessageRepository) AppendNote(ctx context.Context, id uint, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}

// Delete removes a message and its actions
func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CountReceivedSince counts messages received at or after since
func (m *MockMessageRepository) CountReceivedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// ListReceivedSince returns messages received at or after since
func (m *MockMessageRepository) ListReceivedSince(ctx context.Context, since time.Time) ([]models.EmailMessage, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EmailMessage), args.Error(1)
}

// ClassificationCountsSince groups classified messages by classification
func (m *MockMessageRepository) ClassificationCountsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockActionRepository implements repository.ActionRepository
type MockActionRepository struct {
	mock.Mock
}

// Create creates a suggested action
func (m *MockActionRepository) Create(ctx context.Context, action *models.EmailAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// GetByID retrieves an action by its ID
func (m *MockActionRepository) GetByID(ctx context.Context, id uint) (*models.EmailAction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailAction), args.Error(1)
}

// ListViews retrieves actions joined with message context
func (m *MockActionRepository) ListViews(ctx context.Context, filter repository.ActionFilter) ([]models.ActionView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActionView), args.Error(1)
}

// MarkApplied records a successful apply
func (m *MockActionRepository) MarkApplied(ctx context.Context, id uint, actor, resultType string, resultID uint) error {
	args := m.Called(ctx, id, actor, resultType, resultID)
	return args.Error(0)
}

// MarkRejected records a rejection
func (m *MockActionRepository) MarkRejected(ctx context.Context, id uint, actor string) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

// CountSuggested counts actions awaiting review
func (m *MockActionRepository) CountSuggested(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// CountSuggestedForMessage counts pending actions for one message
func (m *MockActionRepository) CountSuggestedForMessage(ctx context.Context, emailMessageID uint) (int64, error) {
	args := m.Called(ctx, emailMessageID)
	return args.Get(0).(int64), args.Error(1)
}

// CountCreatedSince counts actions created at or after since
func (m *MockActionRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// CountByStatusSince counts actions in a status created at or after since
func (m *MockActionRepository) CountByStatusSince(ctx context.Context, status models.ActionStatus, since time.Time) (int64, error) {
	args := m.Called(ctx, status, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockDigestRepository implements repository.DigestRepository
type MockDigestRepository struct {
	mock.Mock
}

// Create records a sent digest
func (m *MockDigestRepository) Create(ctx context.Context, digest *models.EmailDigest) error {
	args := m.Called(ctx, digest)
	return args.Error(0)
}

// GetLatest returns the most recent digest
func (m *MockDigestRepository) GetLatest(ctx context.Context) (*models.EmailDigest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailDigest), args.Error(1)
}

// MockContactRepository implements repository.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

// UpsertByEmail inserts or merges a contact by email
func (m *MockContactRepository) UpsertByEmail(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

// GetByID retrieves a contact by its ID
func (m *MockContactRepository) GetByID(ctx context.Context, id uint) (*models.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

// GetByEmail retrieves a contact by email
func (m *MockContactRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

// List retrieves contacts with a total count
func (m *MockContactRepository) List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Contact), args.Get(1).(int64), args.Error(2)
}

// Delete deletes a contact by its ID
func (m *MockContactRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompanyRepository implements repository.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

// Create creates a company
func (m *MockCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// GetByID retrieves a company by its ID
func (m *MockCompanyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

// List retrieves companies with a total count
func (m *MockCompanyRepository) List(ctx context.Context, limit, offset int) ([]models.Company, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Company), args.Get(1).(int64), args.Error(2)
}

// Delete deletes a company by its ID
func (m *MockCompanyRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDealRepository implements repository.DealRepository
type MockDealRepository struct {
	mock.Mock
}

// Create creates a deal
func (m *MockDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

// GetByID retrieves a deal by its ID
func (m *MockDealRepository) GetByID(ctx context.Context, id uint) (*models.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deal), args.Error(1)
}

// List retrieves deals with a total count
func (m *MockDealRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Deal, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Deal), args.Get(1).(int64), args.Error(2)
}

// UpdateStatus updates a deal's status
func (m *MockDealRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Delete deletes a deal by its ID
func (m *MockDealRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingRepository implements repository.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

// Create creates a booking request
func (m *MockBookingRepository) Create(ctx context.Context, booking *models.BookingRequest) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

// GetByID retrieves a booking request by its ID
func (m *MockBookingRepository) GetByID(ctx context.Context, id uint) (*models.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRequest), args.Error(1)
}

// List retrieves booking requests with a total count
func (m *MockBookingRepository) List(ctx context.Context, status string, limit, offset int) ([]models.BookingRequest, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.BookingRequest), args.Get(1).(int64), args.Error(2)
}

// UpdateStatus updates a booking request's status
func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Delete deletes a booking request by its ID
func (m *MockBookingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVIPRepository implements repository.VIPRepository
type MockVIPRepository struct {
	mock.Mock
}

// Create creates a VIP registration
func (m *MockVIPRepository) Create(ctx context.Context, registration *models.VIPRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

// GetByID retrieves a VIP registration by its ID
func (m *MockVIPRepository) GetByID(ctx context.Context, id uint) (*models.VIPRegistration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VIPRegistration), args.Error(1)
}

// List retrieves VIP registrations with a total count
func (m *MockVIPRepository) List(ctx context.Context, status string, limit, offset int) ([]models.VIPRegistration, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.VIPRegistration), args.Get(1).(int64), args.Error(2)
}

// UpdateStatus updates a VIP registration's status
func (m *MockVIPRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Delete deletes a VIP registration by its ID
func (m *MockVIPRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNewsletterRepository implements repository.NewsletterRepository
type MockNewsletterRepository struct {
	mock.Mock
}

// Subscribe inserts a subscriber unless the email already exists
func (m *MockNewsletterRepository) Subscribe(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error) {
	args := m.Called(ctx, subscriber)
	return args.Bool(0), args.Error(1)
}

// List retrieves subscribers with a total count
func (m *MockNewsletterRepository) List(ctx context.Context, limit, offset int) ([]models.NewsletterSubscriber, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.NewsletterSubscriber), args.Get(1).(int64), args.Error(2)
}

// Delete deletes a subscriber by its ID
func (m *MockNewsletterRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
