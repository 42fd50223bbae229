package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/omniscope-hq/meeting-intel/errors"
	"github.com/omniscope-hq/meeting-intel/internal/adapter/dto/intel"
	"github.com/omniscope-hq/meeting-intel/internal/usecase/intelligence"
)

// AdminHandler exposes the operator surface: batch import and vendor webhook
// registration. Both require the Fathom API key.
type AdminHandler struct {
	service intelligence.Service
	logger  *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service intelligence.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// ImportFathomMeetings pulls a page of historical meetings through the
// ingestion pipeline. Re-running is safe; already-ingested meetings are
// counted as skipped.
func (h *AdminHandler) ImportFathomMeetings(c echo.Context) error {
	var req intel.ImportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.service.ImportFathomMeetings(c.Request().Context(), intelligence.ImportOptions{
		Limit:  req.Limit,
		Cursor: req.Cursor,
		OrgID:  req.OrgID,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, result)
}

// RegisterFathomWebhook performs one-time vendor-side webhook setup
func (h *AdminHandler) RegisterFathomWebhook(c echo.Context) error {
	var req intel.RegisterWebhookRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, errors.ErrInvalidArgument(err.Error()))
	}

	reg, err := h.service.RegisterFathomWebhook(c.Request().Context(), req.DestinationURL)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusCreated, reg)
}
