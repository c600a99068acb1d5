package handlers

import (
	"errors"
	"strconv"

	"github.com/inclusions-zone/mailhub-backend/internal/api/response"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/validator"
	"github.com/labstack/echo/v4"
)

// CRMHandler handles CRM record HTTP requests (contacts, companies, deals,
// bookings, VIP registrations, newsletter subscribers)
type CRMHandler struct {
	contactRepo    repository.ContactRepository
	companyRepo    repository.CompanyRepository
	dealRepo       repository.DealRepository
	bookingRepo    repository.BookingRepository
	vipRepo        repository.VIPRepository
	newsletterRepo repository.NewsletterRepository
}

// NewCRMHandler creates a new CRMHandler
func NewCRMHandler(
	contactRepo repository.ContactRepository,
	companyRepo repository.CompanyRepository,
	dealRepo repository.DealRepository,
	bookingRepo repository.BookingRepository,
	vipRepo repository.VIPRepository,
	newsletterRepo repository.NewsletterRepository,
) *CRMHandler {
	return &CRMHandler{
		contactRepo:    contactRepo,
		companyRepo:    companyRepo,
		dealRepo:       dealRepo,
		bookingRepo:    bookingRepo,
		vipRepo:        vipRepo,
		newsletterRepo: newsletterRepo,
	}
}

func listParams(c echo.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return validator.ValidatePagination(limit, offset)
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

type statusRequest struct {
	Status string `json:"status"`
}

// ==================== Contacts ====================

// ListContacts handles GET /api/contacts
func (h *CRMHandler) ListContacts(c echo.Context) error {
	limit, offset := listParams(c)
	contacts, total, err := h.contactRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list contacts")
	}
	return response.Paginated(c, contacts, total, limit, offset)
}

// DeleteContact handles DELETE /api/contacts/:id
func (h *CRMHandler) DeleteContact(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid contact ID")
	}
	if err := h.contactRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "contact not found")
		}
		return response.InternalError(c, "failed to delete contact")
	}
	return response.NoContent(c)
}

// ==================== Companies ====================

// ListCompanies handles GET /api/companies
func (h *CRMHandler) ListCompanies(c echo.Context) error {
	limit, offset := listParams(c)
	companies, total, err := h.companyRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list companies")
	}
	return response.Paginated(c, companies, total, limit, offset)
}

// DeleteCompany handles DELETE /api/companies/:id
func (h *CRMHandler) DeleteCompany(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid company ID")
	}
	if err := h.companyRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "company not found")
		}
		return response.InternalError(c, "failed to delete company")
	}
	return response.NoContent(c)
}

// ==================== Deals ====================

// ListDeals handles GET /api/deals
func (h *CRMHandler) ListDeals(c echo.Context) error {
	limit, offset := listParams(c)
	deals, total, err := h.dealRepo.List(c.Request().Context(), c.QueryParam("status"), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list deals")
	}
	return response.Paginated(c, deals, total, limit, offset)
}

// UpdateDealStatus handles PATCH /api/deals/:id/status
func (h *CRMHandler) UpdateDealStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid deal ID")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	switch req.Status {
	case models.DealStatusLead, models.DealStatusNegotiation, models.DealStatusWon, models.DealStatusLost:
	default:
		return response.BadRequest(c, "invalid deal status")
	}

	if err := h.dealRepo.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "deal not found")
		}
		return response.InternalError(c, "failed to update deal status")
	}
	return response.SuccessWithMessage(c, nil, "deal status updated")
}

// DeleteDeal handles DELETE /api/deals/:id
func (h *CRMHandler) DeleteDeal(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid deal ID")
	}
	if err := h.dealRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "deal not found")
		}
		return response.InternalError(c, "failed to delete deal")
	}
	return response.NoContent(c)
}

// ==================== Bookings ====================

// ListBookings handles GET /api/bookings
func (h *CRMHandler) ListBookings(c echo.Context) error {
	limit, offset := listParams(c)
	bookings, total, err := h.bookingRepo.List(c.Request().Context(), c.QueryParam("status"), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list bookings")
	}
	return response.Paginated(c, bookings, total, limit, offset)
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status
func (h *CRMHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid booking ID")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	switch req.Status {
	case models.BookingStatusNew, models.BookingStatusConfirmed, models.BookingStatusDeclined:
	default:
		return response.BadRequest(c, "invalid booking status")
	}

	if err := h.bookingRepo.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "booking not found")
		}
		return response.InternalError(c, "failed to update booking status")
	}
	return response.SuccessWithMessage(c, nil, "booking status updated")
}

// DeleteBooking handles DELETE /api/bookings/:id
func (h *CRMHandler) DeleteBooking(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid booking ID")
	}
	if err := h.bookingRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "booking not found")
		}
		return response.InternalError(c, "failed to delete booking")
	}
	return response.NoContent(c)
}

// ==================== VIP registrations ====================

// ListVIPs handles GET /api/vip
func (h *CRMHandler) ListVIPs(c echo.Context) error {
	limit, offset := listParams(c)
	registrations, total, err := h.vipRepo.List(c.Request().Context(), c.QueryParam("status"), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list VIP registrations")
	}
	return response.Paginated(c, registrations, total, limit, offset)
}

// UpdateVIPStatus handles PATCH /api/vip/:id/status
func (h *CRMHandler) UpdateVIPStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid registration ID")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	switch req.Status {
	case models.VIPStatusNew, models.VIPStatusConfirmed, models.VIPStatusDeclined:
	default:
		return response.BadRequest(c, "invalid registration status")
	}

	if err := h.vipRepo.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "registration not found")
		}
		return response.InternalError(c, "failed to update registration status")
	}
	return response.SuccessWithMessage(c, nil, "registration status updated")
}

// DeleteVIP handles DELETE /api/vip/:id
func (h *CRMHandler) DeleteVIP(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid registration ID")
	}
	if err := h.vipRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "registration not found")
		}
		return response.InternalError(c, "failed to delete registration")
	}
	return response.NoContent(c)
}

// ==================== Newsletter ====================

// ListSubscribers handles GET /api/newsletter
func (h *CRMHandler) ListSubscribers(c echo.Context) error {
	limit, offset := listParams(c)
	subscribers, total, err := h.newsletterRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list subscribers")
	}
	return response.Paginated(c, subscribers, total, limit, offset)
}

// DeleteSubscriber handles DELETE /api/newsletter/:id
func (h *CRMHandler) DeleteSubscriber(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid subscriber ID")
	}
	if err := h.newsletterRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "subscriber not found")
		}
		return response.InternalError(c, "failed to delete subscriber")
	}
	return response.NoContent(c)
}
