package handlers

import (
	"time"

	"github.com/inclusions-zone/mailhub-backend/internal/api/response"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/labstack/echo/v4"
)

// StatsHandler handles dashboard statistics HTTP requests
type StatsHandler struct {
	messageRepo repository.MessageRepository
	actionRepo  repository.ActionRepository
	contactRepo repository.ContactRepository
	dealRepo    repository.DealRepository
	bookingRepo repository.BookingRepository
	vipRepo     repository.VIPRepository
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(
	messageRepo repository.MessageRepository,
	actionRepo repository.ActionRepository,
	contactRepo repository.ContactRepository,
	dealRepo repository.DealRepository,
	bookingRepo repository.BookingRepository,
	vipRepo repository.VIPRepository,
) *StatsHandler {
	return &StatsHandler{
		messageRepo: messageRepo,
		actionRepo:  actionRepo,
		contactRepo: contactRepo,
		dealRepo:    dealRepo,
		bookingRepo: bookingRepo,
		vipRepo:     vipRepo,
	}
}

// DashboardStats aggregates the counters shown on the admin dashboard
type DashboardStats struct {
	Inbox            *models.InboxStats `json:"inbox"`
	SuggestedActions int64              `json:"suggested_actions"`
	AppliedLast24h   int64              `json:"applied_last_24h"`
	Contacts         int64              `json:"contacts"`
	Deals            int64              `json:"deals"`
	Bookings         int64              `json:"bookings"`
	VIPRegistrations int64              `json:"vip_registrations"`
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	inbox, err := h.messageRepo.InboxStats(ctx)
	if err != nil {
		return response.InternalError(c, "failed to compute stats")
	}
	suggested, err := h.actionRepo.CountSuggested(ctx)
	if err != nil {
		return response.InternalError(c, "failed to compute stats")
	}
	applied, err := h.actionRepo.CountByStatusSince(ctx, models.ActionApplied, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		return response.InternalError(c, "failed to compute stats")
	}

	stats := &DashboardStats{
		Inbox:            inbox,
		SuggestedActions: suggested,
		AppliedLast24h:   applied,
	}

	if _, total, err := h.contactRepo.List(ctx, 1, 0); err == nil {
		stats.Contacts = total
	}
	if _, total, err := h.dealRepo.List(ctx, "", 1, 0); err == nil {
		stats.Deals = total
	}
	if _, total, err := h.bookingRepo.List(ctx, "", 1, 0); err == nil {
		stats.Bookings = total
	}
	if _, total, err := h.vipRepo.List(ctx, "", 1, 0); err == nil {
		stats.VIPRegistrations = total
	}

	return response.Success(c, stats)
}
