package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/inclusions-zone/mailhub-backend/tests/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/inclusions-zone/mailhub-backend/internal/errors"
)

// DigestHandlerTestSuite is the test suite for DigestHandler
type DigestHandlerTestSuite struct {
	suite.Suite
	echo        *echo.Echo
	handler     *DigestHandler
	mockService *mocks.MockDigestService
}

// SetupTest runs before each test
func (s *DigestHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.mockService = new(mocks.MockDigestService)
	s.handler = NewDigestHandler(s.mockService)
}

// TearDownTest runs after each test
func (s *DigestHandlerTestSuite) TearDownTest() {
	s.mockService.AssertExpectations(s.T())
}

// TestDigestHandlerTestSuite runs the test suite
func TestDigestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DigestHandlerTestSuite))
}

func (s *DigestHandlerTestSuite) createContext() (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/email/digest", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	return c, rec
}

// TestSend_ReturnsResult tests triggering a digest send
func (s *DigestHandlerTestSuite) TestSend_ReturnsResult() {
	// Arrange
	c, rec := s.createContext()

	result := &services.DigestResult{Sent: true, DigestID: "d1", EmailCount: 5, ActionCount: 2}
	s.mockService.On("SendDaily", mock.Anything).Return(result, nil)

	// Act
	err := s.handler.Send(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"sent":true`)
}

// TestSend_NothingNew tests the no-change response
func (s *DigestHandlerTestSuite) TestSend_NothingNew() {
	// Arrange
	c, rec := s.createContext()

	result := &services.DigestResult{Sent: false, Reason: "nothing to send"}
	s.mockService.On("SendDaily", mock.Anything).Return(result, nil)

	// Act
	err := s.handler.Send(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "nothing to send")
}

// TestSend_MailerNotConfigured tests sending without a mail transport
func (s *DigestHandlerTestSuite) TestSend_MailerNotConfigured() {
	// Arrange
	c, rec := s.createContext()

	s.mockService.On("SendDaily", mock.Anything).Return(nil, apperrors.ErrMailerNotConfigured)

	// Act
	err := s.handler.Send(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}
