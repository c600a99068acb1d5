package handlers

import (
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/api/response"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/inclusions-zone/mailhub-backend/internal/validator"
	"github.com/labstack/echo/v4"
)

// PublicHandler handles unauthenticated website form submissions
type PublicHandler struct {
	intake services.IntakeService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(intake services.IntakeService) *PublicHandler {
	return &PublicHandler{intake: intake}
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// Newsletter handles POST /public/newsletter
func (h *PublicHandler) Newsletter(c echo.Context) error {
	var req newsletterRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		return response.BadRequest(c, "invalid email address")
	}

	created, err := h.intake.SubscribeNewsletter(c.Request().Context(), req.Email)
	if err != nil {
		return response.InternalError(c, "failed to subscribe")
	}
	if !created {
		return response.SuccessWithMessage(c, nil, "already subscribed")
	}
	return response.Created(c, map[string]string{"email": req.Email})
}

type vipRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	HasCompanion  bool   `json:"has_companion"`
	Accessibility string `json:"accessibility"`
	Notes         string `json:"notes"`
}

// VIP handles POST /public/vip
func (h *PublicHandler) VIP(c echo.Context) error {
	var req vipRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		return response.BadRequest(c, "invalid email address")
	}

	registration := &models.VIPRegistration{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		HasCompanion:  req.HasCompanion,
		Accessibility: req.Accessibility,
		Notes:         req.Notes,
	}
	if err := h.intake.RegisterVIP(c.Request().Context(), registration); err != nil {
		return response.InternalError(c, "failed to register")
	}
	return response.Created(c, registration)
}

type bookingRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EventDate string `json:"event_date"`
	Message   string `json:"message"`
}

// Booking handles POST /public/booking
func (h *PublicHandler) Booking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		return response.BadRequest(c, "invalid email address")
	}

	booking := &models.BookingRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if req.EventDate != "" {
		date, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			return response.BadRequest(c, "invalid event_date, expected YYYY-MM-DD")
		}
		booking.EventDate = &date
	}

	if err := h.intake.RequestBooking(c.Request().Context(), booking); err != nil {
		return response.InternalError(c, "failed to submit booking request")
	}
	return response.Created(c, booking)
}

type contactFormRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact handles POST /public/contact
func (h *PublicHandler) Contact(c echo.Context) error {
	var req contactFormRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		return response.BadRequest(c, "invalid email address")
	}
	if req.Message == "" {
		return response.BadRequest(c, "message is required")
	}

	contact, err := h.intake.ContactRequest(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		return response.InternalError(c, "failed to store contact request")
	}
	return response.Created(c, contact)
}
