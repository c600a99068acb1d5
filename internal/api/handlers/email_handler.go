package handlers

import (
	"errors"
	"strconv"

	"github.com/inclusions-zone/mailhub-backend/internal/api/response"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/inclusions-zone/mailhub-backend/internal/validator"
	"github.com/labstack/echo/v4"

	apperrors "github.com/inclusions-zone/mailhub-backend/internal/errors"
)

// EmailHandler handles email ingestion, analysis and inbox HTTP requests
type EmailHandler struct {
	ingestion   services.IngestionService
	analysis    services.AnalysisService
	messageRepo repository.MessageRepository
	actionRepo  repository.ActionRepository
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(ingestion services.IngestionService, analysis services.AnalysisService, messageRepo repository.MessageRepository, actionRepo repository.ActionRepository) *EmailHandler {
	return &EmailHandler{
		ingestion:   ingestion,
		analysis:    analysis,
		messageRepo: messageRepo,
		actionRepo:  actionRepo,
	}
}

// MessageDetail is one message with its count of still-suggested actions
type MessageDetail struct {
	models.EmailMessage
	PendingActions int64 `json:"pending_actions"`
}

// Ingest handles POST /api/email/ingest
func (h *EmailHandler) Ingest(c echo.Context) error {
	days := 0
	if d := c.QueryParam("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 0 {
			return response.BadRequest(c, "invalid days parameter")
		}
		days = parsed
	}

	if account := c.QueryParam("account"); account != "" {
		result, err := h.ingestion.IngestAccount(c.Request().Context(), account, days)
		if err != nil {
			if result == nil {
				return response.Error(c, err)
			}
			return response.PartialFailure(c, []services.AccountResult{*result}, err)
		}
		return response.Success(c, []services.AccountResult{*result})
	}

	results, err := h.ingestion.IngestAll(c.Request().Context(), days)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoAccountsConfigured) {
			return response.Error(c, err)
		}
		// Failures still carry the per-account results.
		return response.PartialFailure(c, results, err)
	}
	return response.Success(c, results)
}

// Connections handles GET /api/email/connections
func (h *EmailHandler) Connections(c echo.Context) error {
	return response.Success(c, h.ingestion.TestConnections(c.Request().Context()))
}

// Analyze handles POST /api/email/analyze
func (h *EmailHandler) Analyze(c echo.Context) error {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 0 {
			return response.BadRequest(c, "invalid limit parameter")
		}
		limit = parsed
	}

	result, err := h.analysis.AnalyzeUnprocessed(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

// Inbox handles GET /api/email/inbox
func (h *EmailHandler) Inbox(c echo.Context) error {
	filter := repository.InboxFilter{
		Account:        c.QueryParam("account"),
		Classification: c.QueryParam("classification"),
		Urgency:        c.QueryParam("urgency"),
		Status:         c.QueryParam("status"),
		Search:         c.QueryParam("search"),
		Limit:          50,
	}

	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			filter.Offset = parsed
		}
	}
	filter.Limit, filter.Offset = validator.ValidatePagination(filter.Limit, filter.Offset)

	items, total, err := h.messageRepo.ListInbox(c.Request().Context(), filter)
	if err != nil {
		return response.InternalError(c, "failed to list inbox")
	}
	return response.Paginated(c, items, total, filter.Limit, filter.Offset)
}

// Get handles GET /api/email/messages/:id
func (h *EmailHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid message ID")
	}

	message, err := h.messageRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "message not found")
		}
		return response.InternalError(c, "failed to get message")
	}

	// Auto mark as read
	if !message.IsRead {
		_ = h.messageRepo.MarkAsRead(c.Request().Context(), uint(id))
		message.IsRead = true
	}

	pending, err := h.actionRepo.CountSuggestedForMessage(c.Request().Context(), uint(id))
	if err != nil {
		return response.InternalError(c, "failed to count pending actions")
	}

	return response.Success(c, MessageDetail{EmailMessage: *message, PendingActions: pending})
}

// MarkAsRead handles PATCH /api/email/messages/:id/read
func (h *EmailHandler) MarkAsRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid message ID")
	}

	if err := h.messageRepo.MarkAsRead(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "message not found")
		}
		return response.InternalError(c, "failed to mark message as read")
	}

	return response.SuccessWithMessage(c, nil, "message marked as read")
}

type archiveRequest struct {
	Archived *bool `json:"archived"`
}

// Archive handles PATCH /api/email/messages/:id/archive
func (h *EmailHandler) Archive(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid message ID")
	}

	// Missing body means archive; {"archived": false} unarchives.
	archived := true
	var req archiveRequest
	if err := c.Bind(&req); err == nil && req.Archived != nil {
		archived = *req.Archived
	}

	if err := h.messageRepo.SetArchived(c.Request().Context(), uint(id), archived); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "message not found")
		}
		return response.InternalError(c, "failed to archive message")
	}

	if archived {
		return response.SuccessWithMessage(c, nil, "message archived")
	}
	return response.SuccessWithMessage(c, nil, "message unarchived")
}

// Delete handles DELETE /api/email/messages/:id
func (h *EmailHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid message ID")
	}

	if err := h.messageRepo.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "message not found")
		}
		if errors.Is(err, repository.ErrHasPendingActions) {
			return response.Error(c, apperrors.ErrMessageHasPendingActions)
		}
		return response.InternalError(c, "failed to delete message")
	}

	return response.NoContent(c)
}
