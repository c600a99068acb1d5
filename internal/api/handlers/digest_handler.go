package handlers

import (
	"github.com/inclusions-zone/mailhub-backend/internal/api/response"
	"github.com/inclusions-zone/mailhub-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// DigestHandler handles digest HTTP requests
type DigestHandler struct {
	service services.DigestService
}

// NewDigestHandler creates a new DigestHandler
func NewDigestHandler(service services.DigestService) *DigestHandler {
	return &DigestHandler{service: service}
}

// Send handles POST /api/email/digest
func (h *DigestHandler) Send(c echo.Context) error {
	result, err := h.service.SendDaily(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
