package handlers

import (
	"strconv"

	"github.com/inclusions-zone/mailhub-backend/internal/api/response"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ActionHandler handles suggested action review HTTP requests
type ActionHandler struct {
	service services.ActionService
}

// NewActionHandler creates a new ActionHandler
func NewActionHandler(service services.ActionService) *ActionHandler {
	return &ActionHandler{service: service}
}

// List handles GET /api/email/actions
func (h *ActionHandler) List(c echo.Context) error {
	filter := repository.ActionFilter{
		Status: models.ActionStatus(c.QueryParam("status")),
	}

	if id := c.QueryParam("email_id"); id != "" {
		parsed, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return response.BadRequest(c, "invalid email_id parameter")
		}
		filter.EmailMessageID = uint(parsed)
	}
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}

	views, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return response.InternalError(c, "failed to list actions")
	}
	return response.Success(c, views)
}

type decideRequest struct {
	Decision  string `json:"decision"`
	DecidedBy string `json:"decided_by"`
}

// Decide handles POST /api/email/actions/:id
func (h *ActionHandler) Decide(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid action ID")
	}

	var req decideRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Decision == "" {
		return response.BadRequest(c, "decision is required")
	}

	actor := req.DecidedBy
	if actor == "" {
		actor = "admin"
	}

	action, err := h.service.Decide(c.Request().Context(), uint(id), req.Decision, actor)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, action)
}
