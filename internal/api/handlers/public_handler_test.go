package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/tests/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// PublicHandlerTestSuite is the test suite for PublicHandler
type PublicHandlerTestSuite struct {
	suite.Suite
	echo       *echo.Echo
	handler    *PublicHandler
	mockIntake *mocks.MockIntakeService
}

// SetupTest runs before each test
func (s *PublicHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.mockIntake = new(mocks.MockIntakeService)
	s.handler = NewPublicHandler(s.mockIntake)
}

// TearDownTest runs after each test
func (s *PublicHandlerTestSuite) TearDownTest() {
	s.mockIntake.AssertExpectations(s.T())
}

// TestPublicHandlerTestSuite runs the test suite
func TestPublicHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PublicHandlerTestSuite))
}

// Helper function to create a test context
func (s *PublicHandlerTestSuite) createContext(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	return c, rec
}

// ==================== Newsletter Tests ====================

// TestNewsletter_NewSubscriber tests a first-time signup
func (s *PublicHandlerTestSuite) TestNewsletter_NewSubscriber() {
	// Arrange
	c, rec := s.createContext("/public/newsletter", `{"email": "fan@example.com"}`)

	s.mockIntake.On("SubscribeNewsletter", mock.Anything, "fan@example.com").Return(true, nil)

	// Act
	err := s.handler.Newsletter(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)
}

// TestNewsletter_DuplicateIsSuccess tests that subscribing twice succeeds
func (s *PublicHandlerTestSuite) TestNewsletter_DuplicateIsSuccess() {
	// Arrange
	c, rec := s.createContext("/public/newsletter", `{"email": "fan@example.com"}`)

	s.mockIntake.On("SubscribeNewsletter", mock.Anything, "fan@example.com").Return(false, nil)

	// Act
	err := s.handler.Newsletter(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "already subscribed")
}

// TestNewsletter_InvalidEmail tests rejecting a malformed address
func (s *PublicHandlerTestSuite) TestNewsletter_InvalidEmail() {
	// Arrange
	c, rec := s.createContext("/public/newsletter", `{"email": "not-an-email"}`)

	// Act
	err := s.handler.Newsletter(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ==================== VIP Tests ====================

// TestVIP_ValidRegistration tests a VIP registration submission
func (s *PublicHandlerTestSuite) TestVIP_ValidRegistration() {
	// Arrange
	body := `{"name": "Jonas Weber", "email": "jonas@example.com", "has_companion": true, "accessibility": "Rollstuhl"}`
	c, rec := s.createContext("/public/vip", body)

	s.mockIntake.On("RegisterVIP", mock.Anything, mock.MatchedBy(func(r *models.VIPRegistration) bool {
		return r.Name == "Jonas Weber" && r.HasCompanion && r.Accessibility == "Rollstuhl"
	})).Return(nil)

	// Act
	err := s.handler.VIP(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)
}

// TestVIP_MissingName tests a registration without a name
func (s *PublicHandlerTestSuite) TestVIP_MissingName() {
	// Arrange
	c, rec := s.createContext("/public/vip", `{"email": "jonas@example.com"}`)

	// Act
	err := s.handler.VIP(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ==================== Booking Tests ====================

// TestBooking_ParsesEventDate tests a booking with an event date
func (s *PublicHandlerTestSuite) TestBooking_ParsesEventDate() {
	// Arrange
	body := `{"name": "DJ Mo", "email": "mo@example.com", "event_date": "2026-04-25", "message": "Set am Abend"}`
	c, rec := s.createContext("/public/booking", body)

	s.mockIntake.On("RequestBooking", mock.Anything, mock.MatchedBy(func(b *models.BookingRequest) bool {
		return b.EventDate != nil && b.EventDate.Format("2006-01-02") == "2026-04-25"
	})).Return(nil)

	// Act
	err := s.handler.Booking(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)
}

// TestBooking_InvalidEventDate tests an unparseable event date
func (s *PublicHandlerTestSuite) TestBooking_InvalidEventDate() {
	// Arrange
	body := `{"name": "DJ Mo", "email": "mo@example.com", "event_date": "25.04.2026"}`
	c, rec := s.createContext("/public/booking", body)

	// Act
	err := s.handler.Booking(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ==================== Contact Tests ====================

// TestContact_StoresContact tests a contact form submission
func (s *PublicHandlerTestSuite) TestContact_StoresContact() {
	// Arrange
	body := `{"name": "Lea", "email": "lea@example.com", "message": "Frage zur Barrierefreiheit"}`
	c, rec := s.createContext("/public/contact", body)

	contact := &models.Contact{ID: 3, Email: "lea@example.com"}
	s.mockIntake.On("ContactRequest", mock.Anything, "Lea", "lea@example.com", "Frage zur Barrierefreiheit").
		Return(contact, nil)

	// Act
	err := s.handler.Contact(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)
}

// TestContact_MissingMessage tests a contact form without a message
func (s *PublicHandlerTestSuite) TestContact_MissingMessage() {
	// Arrange
	c, rec := s.createContext("/public/contact", `{"name": "Lea", "email": "lea@example.com"}`)

	// Act
	err := s.handler.Contact(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}
