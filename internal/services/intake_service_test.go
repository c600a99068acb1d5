package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
)

func newIntakeService(newsletter *MockNewsletterRepository, vips *MockVIPRepository, bookings *MockBookingRepository, contacts *MockContactRepository, mailer *MockMailer) IntakeService {
	return NewIntakeService(newsletter, vips, bookings, contacts, mailer, testLogger())
}

func TestSubscribeNewsletter_NewAndDuplicate(t *testing.T) {
	mockNewsletter := new(MockNewsletterRepository)
	mockNewsletter.On("Subscribe", mock.Anything, mock.Anything).Return(true, nil).Once()
	mockNewsletter.On("Subscribe", mock.Anything, mock.Anything).Return(false, nil).Once()

	service := newIntakeService(mockNewsletter, nil, nil, nil, nil)

	created, err := service.SubscribeNewsletter(context.Background(), "fan@example.org")
	require.NoError(t, err)
	assert.True(t, created)

	// Subscribing again is a success, not an error.
	created, err = service.SubscribeNewsletter(context.Background(), "fan@example.org")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRegisterVIP_StoresAndConfirms(t *testing.T) {
	mockVIPs := new(MockVIPRepository)
	mockMailer := new(MockMailer)

	mockVIPs.On("Create", mock.Anything, mock.MatchedBy(func(v *models.VIPRegistration) bool {
		return v.Status == models.VIPStatusNew
	})).Return(nil)
	mockMailer.On("Send", mock.Anything, []string{"toni@example.org"}, mock.Anything, mock.Anything).Return(nil)

	service := newIntakeService(nil, mockVIPs, nil, nil, mockMailer)

	err := service.RegisterVIP(context.Background(), &models.VIPRegistration{
		Name:  "Toni Beispiel",
		Email: "toni@example.org",
	})

	require.NoError(t, err)
	mockMailer.AssertExpectations(t)
}

func TestRegisterVIP_ConfirmationFailureIsNotFatal(t *testing.T) {
	mockVIPs := new(MockVIPRepository)
	mockMailer := new(MockMailer)

	mockVIPs.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("quota exceeded"))

	service := newIntakeService(nil, mockVIPs, nil, nil, mockMailer)

	err := service.RegisterVIP(context.Background(), &models.VIPRegistration{Name: "Toni", Email: "toni@example.org"})

	assert.NoError(t, err)
}

func TestRequestBooking_Stores(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMailer := new(MockMailer)

	mockBookings.On("Create", mock.Anything, mock.MatchedBy(func(b *models.BookingRequest) bool {
		return b.Status == models.BookingStatusNew
	})).Return(nil)
	mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newIntakeService(nil, nil, mockBookings, nil, mockMailer)

	err := service.RequestBooking(context.Background(), &models.BookingRequest{
		Name:  "DJ Pesa",
		Email: "pesa@example.org",
	})

	assert.NoError(t, err)
}

func TestContactRequest_UpsertsContact(t *testing.T) {
	mockContacts := new(MockContactRepository)
	mockMailer := new(MockMailer)

	mockContacts.On("UpsertByEmail", mock.Anything, mock.MatchedBy(func(c *models.Contact) bool {
		return c.Source == "website" && c.Email == "hans@example.org"
	})).Return(&models.Contact{ID: 9, Email: "hans@example.org"}, nil)
	mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newIntakeService(nil, nil, nil, mockContacts, mockMailer)

	contact, err := service.ContactRequest(context.Background(), "Hans", "hans@example.org", "Gibt es noch Tickets?")

	require.NoError(t, err)
	assert.Equal(t, uint(9), contact.ID)
}
