package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inclusions-zone/mailhub-backend/internal/api/response"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/tests/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// CRMHandlerTestSuite is the test suite for CRMHandler
type CRMHandlerTestSuite struct {
	suite.Suite
	echo           *echo.Echo
	handler        *CRMHandler
	mockContacts   *mocks.MockContactRepository
	mockCompanies  *mocks.MockCompanyRepository
	mockDeals      *mocks.MockDealRepository
	mockBookings   *mocks.MockBookingRepository
	mockVIPs       *mocks.MockVIPRepository
	mockNewsletter *mocks.MockNewsletterRepository
}

// SetupTest runs before each test
func (s *CRMHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.mockContacts = new(mocks.MockContactRepository)
	s.mockCompanies = new(mocks.MockCompanyRepository)
	s.mockDeals = new(mocks.MockDealRepository)
	s.mockBookings = new(mocks.MockBookingRepository)
	s.mockVIPs = new(mocks.MockVIPRepository)
	s.mockNewsletter = new(mocks.MockNewsletterRepository)
	s.handler = NewCRMHandler(s.mockContacts, s.mockCompanies, s.mockDeals, s.mockBookings, s.mockVIPs, s.mockNewsletter)
}

// TearDownTest runs after each test
func (s *CRMHandlerTestSuite) TearDownTest() {
	s.mockContacts.AssertExpectations(s.T())
	s.mockCompanies.AssertExpectations(s.T())
	s.mockDeals.AssertExpectations(s.T())
	s.mockBookings.AssertExpectations(s.T())
	s.mockVIPs.AssertExpectations(s.T())
	s.mockNewsletter.AssertExpectations(s.T())
}

// TestCRMHandlerTestSuite runs the test suite
func TestCRMHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CRMHandlerTestSuite))
}

// Helper function to create a test context
func (s *CRMHandlerTestSuite) createContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	return c, rec
}

// ==================== Contact Tests ====================

// TestListContacts_ReturnsPaginated tests listing contacts
func (s *CRMHandlerTestSuite) TestListContacts_ReturnsPaginated() {
	// Arrange
	c, rec := s.createContext(http.MethodGet, "/api/contacts?limit=10", "")

	contacts := []models.Contact{{ID: 1, Email: "maria@example.com"}}
	s.mockContacts.On("List", mock.Anything, 10, 0).Return(contacts, int64(1), nil)

	// Act
	err := s.handler.ListContacts(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var resp response.PaginatedResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	s.Equal(int64(1), resp.Meta.Total)
}

// TestDeleteContact_NotFound tests deleting a missing contact
func (s *CRMHandlerTestSuite) TestDeleteContact_NotFound() {
	// Arrange
	c, rec := s.createContext(http.MethodDelete, "/api/contacts/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	s.mockContacts.On("Delete", mock.Anything, uint(99)).Return(repository.ErrNotFound)

	// Act
	err := s.handler.DeleteContact(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
}

// ==================== Deal Tests ====================

// TestListDeals_FiltersByStatus tests listing deals with a status filter
func (s *CRMHandlerTestSuite) TestListDeals_FiltersByStatus() {
	// Arrange
	c, rec := s.createContext(http.MethodGet, "/api/deals?status=lead", "")

	deals := []models.Deal{{ID: 1, Title: "Sponsoring Supermarket", Status: models.DealStatusLead}}
	s.mockDeals.On("List", mock.Anything, "lead", 50, 0).Return(deals, int64(1), nil)

	// Act
	err := s.handler.ListDeals(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Sponsoring Supermarket")
}

// TestUpdateDealStatus_Valid tests moving a deal through the pipeline
func (s *CRMHandlerTestSuite) TestUpdateDealStatus_Valid() {
	// Arrange
	c, rec := s.createContext(http.MethodPatch, "/api/deals/1/status", `{"status": "won"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	s.mockDeals.On("UpdateStatus", mock.Anything, uint(1), "won").Return(nil)

	// Act
	err := s.handler.UpdateDealStatus(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

// TestUpdateDealStatus_InvalidStatus tests an unknown deal status
func (s *CRMHandlerTestSuite) TestUpdateDealStatus_InvalidStatus() {
	// Arrange
	c, rec := s.createContext(http.MethodPatch, "/api/deals/1/status", `{"status": "maybe"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	// Act
	err := s.handler.UpdateDealStatus(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ==================== Booking Tests ====================

// TestUpdateBookingStatus_Confirm tests confirming a booking request
func (s *CRMHandlerTestSuite) TestUpdateBookingStatus_Confirm() {
	// Arrange
	c, rec := s.createContext(http.MethodPatch, "/api/bookings/4/status", `{"status": "confirmed"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")

	s.mockBookings.On("UpdateStatus", mock.Anything, uint(4), "confirmed").Return(nil)

	// Act
	err := s.handler.UpdateBookingStatus(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

// TestUpdateBookingStatus_InvalidStatus tests an unknown booking status
func (s *CRMHandlerTestSuite) TestUpdateBookingStatus_InvalidStatus() {
	// Arrange
	c, rec := s.createContext(http.MethodPatch, "/api/bookings/4/status", `{"status": "archived"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")

	// Act
	err := s.handler.UpdateBookingStatus(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ==================== VIP Tests ====================

// TestListVIPs_ReturnsRegistrations tests listing VIP registrations
func (s *CRMHandlerTestSuite) TestListVIPs_ReturnsRegistrations() {
	// Arrange
	c, rec := s.createContext(http.MethodGet, "/api/vip", "")

	registrations := []models.VIPRegistration{{ID: 1, Name: "Jonas Weber", Status: models.VIPStatusNew}}
	s.mockVIPs.On("List", mock.Anything, "", 50, 0).Return(registrations, int64(1), nil)

	// Act
	err := s.handler.ListVIPs(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Jonas Weber")
}

// ==================== Newsletter Tests ====================

// TestDeleteSubscriber_Success tests removing a subscriber
func (s *CRMHandlerTestSuite) TestDeleteSubscriber_Success() {
	// Arrange
	c, rec := s.createContext(http.MethodDelete, "/api/newsletter/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")

	s.mockNewsletter.On("Delete", mock.Anything, uint(2)).Return(nil)

	// Act
	err := s.handler.DeleteSubscriber(c)

	// Assert
	s.NoError(err)
	s.Equal(http.StatusNoContent, rec.Code)
}
